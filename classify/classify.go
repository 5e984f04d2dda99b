// Package classify turns free-text Salesforce fields into typed
// classifications. The rules here were previously embedded in SQL CASE
// ladders; keeping them as pure functions makes them testable without a
// database and keeps the SQL to plain aggregation.
package classify

import "strings"

// SeniorityLevel is the seniority band assigned to a contact title.
type SeniorityLevel string

const (
	CLevel         SeniorityLevel = "C-Level"
	SeniorVP       SeniorityLevel = "Senior VP"
	VP             SeniorityLevel = "VP"
	SeniorDirector SeniorityLevel = "Senior Director"
	Director       SeniorityLevel = "Director"
	SeniorManager  SeniorityLevel = "Senior Manager"
	Manager        SeniorityLevel = "Manager"
	Contributor    SeniorityLevel = "Individual Contributor"
	Unknown        SeniorityLevel = "Unknown"
)

// Levels lists all seniority levels from most to least senior, for
// ordered report output.
var Levels = []SeniorityLevel{
	CLevel, SeniorVP, VP, SeniorDirector, Director,
	SeniorManager, Manager, Contributor, Unknown,
}

// Score returns a numeric rank for the level, 7 for C-Level down to 0
// for individual contributors and unknown titles.
func (s SeniorityLevel) Score() int {
	switch s {
	case CLevel:
		return 7
	case SeniorVP:
		return 6
	case VP:
		return 5
	case SeniorDirector:
		return 4
	case Director:
		return 3
	case SeniorManager:
		return 2
	case Manager:
		return 1
	default:
		return 0
	}
}

// containsAny reports whether s contains any of the needles.
func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Seniority classifies a contact title into a SeniorityLevel. Matching
// is case-insensitive and ordered from most to least senior so that,
// for example, "Senior Vice President of Marketing" is classified as
// Senior VP rather than VP.
func Seniority(title string) SeniorityLevel {
	if strings.TrimSpace(title) == "" {
		return Unknown
	}
	t := strings.ToLower(title)

	switch {
	case containsAny(t, "ceo", "chief executive", "president", "cmo", "chief marketing",
		"cto", "chief technology", "cfo", "chief financial", "coo", "chief operating"):
		return CLevel
	case containsAny(t, "senior vice president", "senior vp", "svp", "executive vice president", "evp"):
		return SeniorVP
	case containsAny(t, "vice president", "vp ", " vp"):
		return VP
	case containsAny(t, "senior director", "sr director", "sr. director"):
		return SeniorDirector
	case strings.Contains(t, "director"):
		return Director
	case containsAny(t, "senior manager", "sr manager", "sr. manager"):
		return SeniorManager
	case strings.Contains(t, "manager"):
		return Manager
	}
	return Contributor
}

// ContactTier groups a title into the sales-facing role tiers used by
// the prospect reports.
func ContactTier(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "music"):
		return "Music Specialist"
	case containsAny(t, "vp", "vice president"):
		return "Executive"
	case strings.Contains(t, "director"):
		return "Director"
	case containsAny(t, "marketing", "brand"):
		return "Marketing Professional"
	case strings.Contains(t, "manager"):
		return "Manager"
	}
	return "Other Role"
}

// PrimaryIndustry picks the dominant industry focus for an account from
// its per-category brand counts, in MAX.Live priority order.
func PrimaryIndustry(beverage, entertainment, automotive, food int) string {
	switch {
	case beverage > 0:
		return "Beverage"
	case entertainment > 0:
		return "Entertainment"
	case automotive > 0:
		return "Automotive"
	case food > 0:
		return "Food & CPG"
	}
	return "Other"
}

// AccountSizeTier bands an account by its average brand media spend.
func AccountSizeTier(avgMediaSpend float64) string {
	switch {
	case avgMediaSpend >= 5_000_000:
		return "Enterprise ($5M+)"
	case avgMediaSpend >= 1_000_000:
		return "Large ($1M-$5M)"
	case avgMediaSpend >= 500_000:
		return "Medium ($500K-$1M)"
	case avgMediaSpend >= 100_000:
		return "Small ($100K-$500K)"
	}
	return "Minimal (<$100K)"
}
