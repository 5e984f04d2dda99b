package db

// brands.go deals with brand-level database calls: the candidate pool
// for artist matching and the industry scan behind find-music-sponsors.

import (
	"context"
	"database/sql"
	"fmt"
)

// Brand is the concrete type of each row returned by GetBrands.
type Brand struct {
	ID                 string  `db:"id"`
	Name               string  `db:"name"`
	Industry           string  `db:"industry"`
	SubIndustry        string  `db:"sub_industry"`
	MediaSpend         float64 `db:"media_spend"`
	AudienceAttributes string  `db:"audience_attributes"`
	TargetRegion       string  `db:"target_region"`
	AccountName        string  `db:"account_name"`
}

// GetBrands retrieves brands with at least minSpend of media spend,
// biggest spenders first.
func (db *DB) GetBrands(ctx context.Context, minSpend float64) ([]Brand, error) {

	stmt := db.brandsStmt

	// Args uses sqlx's named query capability.
	namedArgs := map[string]any{
		"MinSpend": minSpend,
	}
	if err := stmt.verifyArgs(namedArgs); err != nil {
		return nil, err
	}

	// Use sqlx to scan results into the provided slice.
	var brands []Brand
	err := stmt.SelectContext(ctx, &brands, namedArgs)
	logQuery("brands", stmt, namedArgs, err)
	if err != nil {
		return nil, fmt.Errorf("brands select error: %w", err)
	}
	// Return early if no rows were returned.
	if len(brands) == 0 {
		return nil, sql.ErrNoRows
	}
	return brands, nil
}

// SponsorAccount is the concrete type of each row returned by
// GetSponsorAccounts.
type SponsorAccount struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Industry     string  `db:"industry"`
	Revenue      float64 `db:"annual_revenue"`
	Employees    int     `db:"number_of_employees"`
	BillingState string  `db:"billing_state"`
}

// GetSponsorAccounts retrieves accounts in sponsor-relevant industries
// with more than minEmployees employees, ranked by annual revenue.
func (db *DB) GetSponsorAccounts(ctx context.Context, minEmployees int) ([]SponsorAccount, error) {

	stmt := db.sponsorsStmt

	namedArgs := map[string]any{
		"MinEmployees": minEmployees,
	}
	if err := stmt.verifyArgs(namedArgs); err != nil {
		return nil, err
	}

	var accounts []SponsorAccount
	err := stmt.SelectContext(ctx, &accounts, namedArgs)
	logQuery("sponsor accounts", stmt, namedArgs, err)
	if err != nil {
		return nil, fmt.Errorf("sponsor accounts select error: %w", err)
	}
	if len(accounts) == 0 {
		return nil, sql.ErrNoRows
	}
	return accounts, nil
}
