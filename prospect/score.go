// Package prospect scores contacts for outreach priority. The scoring
// rules used to live inside a large SQL CASE ladder; here the SQL only
// fetches raw account and contact aggregates and the point allocation
// is done by pure functions so the rules can be tested directly.
//
// A contact scores up to 100 points across five components: title
// relevance (30), account media spend (25), brand portfolio size (20),
// industry alignment (15) and account meeting activity (10).
package prospect

import "strings"

// Contact is the typed record the scorer operates on: one emailable
// contact joined with its account's brand and meeting aggregates.
type Contact struct {
	ID                  string
	Name                string
	Title               string
	Email               string
	AccountName         string
	BrandCount          int
	AvgMediaSpend       float64
	MaxMediaSpend       float64
	BeverageBrands      int
	EntertainmentBrands int
	AutomotiveBrands    int
	FoodBrands          int
	TotalMeetings       int
	PersonalMeetings    int
}

// Breakdown holds the per-component points for one contact.
type Breakdown struct {
	Title     int
	Spend     int
	Portfolio int
	Industry  int
	Activity  int
}

// Total is the composite 0-100 score.
func (b Breakdown) Total() int {
	return b.Title + b.Spend + b.Portfolio + b.Industry + b.Activity
}

// TitleScore awards up to 30 points for title relevance to music
// sponsorship outreach.
func TitleScore(title string) int {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "music"):
		return 30
	case strings.Contains(t, "marketing"), strings.Contains(t, "brand"):
		return 25
	case strings.Contains(t, "vp"), strings.Contains(t, "vice president"):
		return 20
	case strings.Contains(t, "director"):
		return 15
	case strings.Contains(t, "manager"):
		return 10
	case strings.Contains(t, "coordinator"), strings.Contains(t, "specialist"):
		return 8
	case strings.Contains(t, "associate"):
		return 6
	}
	return 5
}

// SpendScore awards up to 25 points for the account's average brand
// media spend.
func SpendScore(avgMediaSpend float64) int {
	switch {
	case avgMediaSpend >= 10_000_000:
		return 25
	case avgMediaSpend >= 5_000_000:
		return 20
	case avgMediaSpend >= 1_000_000:
		return 15
	case avgMediaSpend >= 500_000:
		return 10
	case avgMediaSpend >= 100_000:
		return 5
	}
	return 0
}

// PortfolioScore awards up to 20 points for brand portfolio size.
func PortfolioScore(brandCount int) int {
	switch {
	case brandCount >= 50:
		return 20
	case brandCount >= 20:
		return 15
	case brandCount >= 10:
		return 10
	case brandCount >= 5:
		return 5
	case brandCount >= 1:
		return 2
	}
	return 0
}

// IndustryScore awards up to 15 points for alignment with the
// industries that have historically sponsored live music, beverage
// first.
func IndustryScore(beverage, entertainment, automotive int) int {
	switch {
	case beverage >= 5:
		return 15
	case beverage >= 2:
		return 12
	case beverage >= 1:
		return 10
	case entertainment >= 2:
		return 8
	case entertainment >= 1:
		return 6
	case automotive >= 2:
		return 4
	case automotive >= 1:
		return 3
	}
	return 0
}

// ActivityScore awards up to 10 points for the account's meeting
// history.
func ActivityScore(totalMeetings int) int {
	switch {
	case totalMeetings >= 100:
		return 10
	case totalMeetings >= 50:
		return 8
	case totalMeetings >= 20:
		return 6
	case totalMeetings >= 10:
		return 4
	case totalMeetings >= 5:
		return 2
	case totalMeetings >= 1:
		return 1
	}
	return 0
}

// ScoreContact computes the component breakdown for one contact.
func ScoreContact(c Contact) Breakdown {
	return Breakdown{
		Title:     TitleScore(c.Title),
		Spend:     SpendScore(c.AvgMediaSpend),
		Portfolio: PortfolioScore(c.BrandCount),
		Industry:  IndustryScore(c.BeverageBrands, c.EntertainmentBrands, c.AutomotiveBrands),
		Activity:  ActivityScore(c.TotalMeetings),
	}
}

// PriorityTier bands a total score for outreach prioritization.
func PriorityTier(total int) string {
	switch {
	case total >= 85:
		return "VERY HIGH"
	case total >= 70:
		return "HIGH"
	case total >= 50:
		return "MEDIUM"
	case total >= 30:
		return "LOW"
	}
	return "VERY LOW"
}
