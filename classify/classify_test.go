package classify

import "testing"

func TestSeniority(t *testing.T) {
	tests := []struct {
		title string
		want  SeniorityLevel
	}{
		{"Chief Marketing Officer", CLevel},
		{"CMO", CLevel},
		{"President, North America", CLevel},
		{"Senior Vice President of Marketing", SeniorVP},
		{"EVP Brand Partnerships", SeniorVP},
		{"Vice President, Media", VP},
		{"VP Marketing", VP},
		{"Sr. Director of Brand", SeniorDirector},
		{"Director of Media Buying", Director},
		{"Senior Manager, Sponsorships", SeniorManager},
		{"Regional Sales Manager", Manager},
		{"Marketing Coordinator", Contributor},
		{"", Unknown},
		{"   ", Unknown},
	}
	for _, tt := range tests {
		if got := Seniority(tt.title); got != tt.want {
			t.Errorf("Seniority(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSeniorityScoreOrdering(t *testing.T) {
	// Scores must strictly decrease from C-Level down to Manager, with
	// contributors and unknowns at zero.
	prev := CLevel.Score() + 1
	for _, level := range Levels[:7] {
		if got := level.Score(); got >= prev {
			t.Errorf("score for %q (%d) not below previous (%d)", level, got, prev)
		} else {
			prev = got
		}
	}
	if Contributor.Score() != 0 || Unknown.Score() != 0 {
		t.Errorf("contributor/unknown scores = %d/%d, want 0/0",
			Contributor.Score(), Unknown.Score())
	}
}

func TestContactTier(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Head of Music Partnerships", "Music Specialist"},
		{"VP of Sales", "Executive"},
		{"Director of Operations", "Director"},
		{"Brand Strategist", "Marketing Professional"},
		{"Account Manager", "Manager"},
		{"Data Analyst", "Other Role"},
	}
	for _, tt := range tests {
		if got := ContactTier(tt.title); got != tt.want {
			t.Errorf("ContactTier(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestPrimaryIndustry(t *testing.T) {
	tests := []struct {
		bev, ent, auto, food int
		want                 string
	}{
		{3, 1, 0, 0, "Beverage"},
		{0, 2, 1, 0, "Entertainment"},
		{0, 0, 1, 4, "Automotive"},
		{0, 0, 0, 1, "Food & CPG"},
		{0, 0, 0, 0, "Other"},
	}
	for _, tt := range tests {
		got := PrimaryIndustry(tt.bev, tt.ent, tt.auto, tt.food)
		if got != tt.want {
			t.Errorf("PrimaryIndustry(%d,%d,%d,%d) = %q, want %q",
				tt.bev, tt.ent, tt.auto, tt.food, got, tt.want)
		}
	}
}

func TestAccountSizeTier(t *testing.T) {
	tests := []struct {
		spend float64
		want  string
	}{
		{12_000_000, "Enterprise ($5M+)"},
		{5_000_000, "Enterprise ($5M+)"},
		{1_500_000, "Large ($1M-$5M)"},
		{750_000, "Medium ($500K-$1M)"},
		{100_000, "Small ($100K-$500K)"},
		{99_999, "Minimal (<$100K)"},
		{0, "Minimal (<$100K)"},
	}
	for _, tt := range tests {
		if got := AccountSizeTier(tt.spend); got != tt.want {
			t.Errorf("AccountSizeTier(%v) = %q, want %q", tt.spend, got, tt.want)
		}
	}
}
