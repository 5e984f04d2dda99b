package db

// profiles.go deals with account-level feature profiles for the
// lookalike analysis and the contact aggregates for prospect scoring.
//
// Customer status is derived, not stored: an account with at least one
// Closed Won opportunity is a customer. The aggregation happens in SQL
// (the database is remote and the row counts are large); all derived
// scoring happens in Go.

import (
	"context"
	"database/sql"
	"fmt"
)

// AccountProfile is the concrete type of each row returned by
// GetCustomerProfiles and GetProspectProfiles. Revenue fields are zero
// for prospects.
type AccountProfile struct {
	ID                   string  `db:"id"`
	Name                 string  `db:"name"`
	TotalRevenue         float64 `db:"total_revenue"`
	DealCount            int     `db:"deal_count"`
	AvgDealSize          float64 `db:"avg_deal_size"`
	BrandCount           int     `db:"brand_count"`
	AvgBrandSpend        float64 `db:"avg_brand_spend"`
	MaxBrandSpend        float64 `db:"max_brand_spend"`
	BeverageBrands       int     `db:"beverage_brands"`
	EntertainmentBrands  int     `db:"entertainment_brands"`
	AutomotiveBrands     int     `db:"automotive_brands"`
	FoodBrands           int     `db:"food_brands"`
	TotalContacts        int     `db:"total_contacts"`
	ManagerContacts      int     `db:"manager_contacts"`
	DirectorContacts     int     `db:"director_contacts"`
	VPContacts           int     `db:"vp_contacts"`
	MarketingContacts    int     `db:"marketing_contacts"`
	BrandContacts        int     `db:"brand_contacts"`
	MediaContacts        int     `db:"media_contacts"`
	TotalMeetings        int     `db:"total_meetings"`
	NewBusinessMeetings  int     `db:"new_business_meetings"`
	ContactsWithMeetings int     `db:"contacts_with_meetings"`
}

// GetCustomerProfiles retrieves the behavioural feature profile of
// every customer account.
func (db *DB) GetCustomerProfiles(ctx context.Context) ([]AccountProfile, error) {
	return db.getProfiles(ctx, "customer_profiles.sql")
}

// GetProspectProfiles retrieves the behavioural feature profile of
// every non-customer account.
func (db *DB) GetProspectProfiles(ctx context.Context) ([]AccountProfile, error) {
	return db.getProfiles(ctx, "prospect_profiles.sql")
}

// getProfiles runs one of the unparameterized profile queries.
func (db *DB) getProfiles(ctx context.Context, sqlFile string) ([]AccountProfile, error) {
	query, err := db.loadQuery(sqlFile)
	if err != nil {
		return nil, err
	}

	var profiles []AccountProfile
	if err := db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("profiles select error from %q: %w", sqlFile, err)
	}
	if len(profiles) == 0 {
		return nil, sql.ErrNoRows
	}
	return profiles, nil
}

// ProspectContact is the concrete type of each row returned by
// GetProspectContacts: one emailable contact joined with its account's
// brand and meeting aggregates.
type ProspectContact struct {
	ID                  string  `db:"id"`
	Name                string  `db:"name"`
	Title               string  `db:"title"`
	Email               string  `db:"email"`
	AccountName         string  `db:"account_name"`
	BrandCount          int     `db:"brand_count"`
	AvgMediaSpend       float64 `db:"avg_media_spend"`
	MaxMediaSpend       float64 `db:"max_media_spend"`
	BeverageBrands      int     `db:"beverage_brands"`
	EntertainmentBrands int     `db:"entertainment_brands"`
	AutomotiveBrands    int     `db:"automotive_brands"`
	FoodBrands          int     `db:"food_brands"`
	TotalMeetings       int     `db:"total_meetings"`
	PersonalMeetings    int     `db:"personal_meetings"`
}

// GetProspectContacts retrieves every contact with an email address
// outside the internal domain, carrying the account aggregates the
// prospect scorer needs. domainPattern is an SQL LIKE pattern such as
// '%musicaudienceexchange%'.
func (db *DB) GetProspectContacts(ctx context.Context, domainPattern string) ([]ProspectContact, error) {

	stmt := db.prospectContactsStmt

	namedArgs := map[string]any{
		"DomainPattern": domainPattern,
	}
	if err := stmt.verifyArgs(namedArgs); err != nil {
		return nil, err
	}

	var contacts []ProspectContact
	err := stmt.SelectContext(ctx, &contacts, namedArgs)
	logQuery("prospect contacts", stmt, namedArgs, err)
	if err != nil {
		return nil, fmt.Errorf("prospect contacts select error: %w", err)
	}
	if len(contacts) == 0 {
		return nil, sql.ErrNoRows
	}
	return contacts, nil
}
