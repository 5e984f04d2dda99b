package db

// engagement.go deals with the meeting rows behind the executive
// engagement analysis.

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EngagementMeeting is the concrete type of each row returned by
// GetEngagementMeetings: one New Business meeting joined with its
// contact and account. MeetingSequence is the 1-based order of the
// meeting within the contact's history, so sequence 1 marks the
// contact's first meeting. IsCustomer is 1 when the account has a
// Closed Won opportunity.
type EngagementMeeting struct {
	MeetingID       string    `db:"meeting_id"`
	MeetingDate     time.Time `db:"meeting_date"`
	Type            string    `db:"type"`
	ContactID       string    `db:"contact_id"`
	ContactName     string    `db:"contact_name"`
	Title           string    `db:"title"`
	AccountID       string    `db:"account_id"`
	AccountName     string    `db:"account_name"`
	IsCustomer      int       `db:"is_customer"`
	MeetingSequence int       `db:"meeting_sequence"`
}

// Customer reports whether the meeting's account is a customer.
func (m EngagementMeeting) Customer() bool { return m.IsCustomer != 0 }

// GetEngagementMeetings retrieves the New Business meetings held since
// the given date, ordered by contact and meeting date.
func (db *DB) GetEngagementMeetings(ctx context.Context, since time.Time) ([]EngagementMeeting, error) {

	stmt := db.engagementStmt

	namedArgs := map[string]any{
		"Since": since,
	}
	if err := stmt.verifyArgs(namedArgs); err != nil {
		return nil, err
	}

	var meetings []EngagementMeeting
	err := stmt.SelectContext(ctx, &meetings, namedArgs)
	logQuery("engagement meetings", stmt, namedArgs, err)
	if err != nil {
		return nil, fmt.Errorf("engagement meetings select error: %w", err)
	}
	if len(meetings) == 0 {
		return nil, sql.ErrNoRows
	}
	return meetings, nil
}
