package db

// quality.go deals with the data-quality aggregates behind the
// analyze-prospects command: how usable the contact and account data
// actually is before anyone builds outreach lists on it.

import (
	"context"
	"fmt"
)

// ContactQuality summarizes contact field coverage.
type ContactQuality struct {
	Total       int `db:"total_contacts"`
	WithEmail   int `db:"with_email"`
	WithPhone   int `db:"with_phone"`
	WithAccount int `db:"with_account"`
	WithTitle   int `db:"with_title"`
}

// AccountQuality summarizes account field coverage.
type AccountQuality struct {
	Total         int `db:"total_accounts"`
	WithIndustry  int `db:"with_industry"`
	WithRevenue   int `db:"with_revenue"`
	WithEmployees int `db:"with_employees"`
	WithState     int `db:"with_state"`
}

// GetContactQuality retrieves contact field coverage counts.
func (db *DB) GetContactQuality(ctx context.Context) (*ContactQuality, error) {
	query, err := db.loadQuery("contact_quality.sql")
	if err != nil {
		return nil, err
	}
	var quality ContactQuality
	if err := db.GetContext(ctx, &quality, query); err != nil {
		return nil, fmt.Errorf("contact quality select error: %w", err)
	}
	return &quality, nil
}

// GetAccountQuality retrieves account field coverage counts.
func (db *DB) GetAccountQuality(ctx context.Context) (*AccountQuality, error) {
	query, err := db.loadQuery("account_quality.sql")
	if err != nil {
		return nil, err
	}
	var quality AccountQuality
	if err := db.GetContext(ctx, &quality, query); err != nil {
		return nil, fmt.Errorf("account quality select error: %w", err)
	}
	return &quality, nil
}
