package match

import (
	"math"
	"testing"
)

func testMatcher() *Matcher {
	return NewMatcher(DefaultWeights(), DefaultIndustryAttributeMap())
}

func TestAgeSimilarityExactMatch(t *testing.T) {
	m := testMatcher()
	// Brand range fully contained in, and identical to, the artist's
	// dominant bucket.
	artistAge := map[string]float64{"21-29 Years Old": 1.5}
	if got := m.AgeSimilarity(artistAge, "21-29"); got != 1.0 {
		t.Errorf("identical ranges: got %v, want 1.0", got)
	}
}

func TestAgeSimilarityDisjoint(t *testing.T) {
	m := testMatcher()
	artistAge := map[string]float64{"21-29 Years Old": 1.5}
	if got := m.AgeSimilarity(artistAge, "50-59"); got != 0.0 {
		t.Errorf("disjoint ranges: got %v, want 0.0", got)
	}
}

func TestAgeSimilarityNeutralDefaults(t *testing.T) {
	m := testMatcher()
	tests := []struct {
		name      string
		artistAge map[string]float64
		brandAge  string
	}{
		{"no brand range", map[string]float64{"21-29 Years Old": 1.0}, "all ages"},
		{"no artist buckets", map[string]float64{}, "21-29"},
		{"unparseable artist labels", map[string]float64{"young adults": 1.0}, "21-29"},
	}
	for _, tt := range tests {
		if got := m.AgeSimilarity(tt.artistAge, tt.brandAge); got != 0.5 {
			t.Errorf("%s: got %v, want neutral 0.5", tt.name, got)
		}
	}
}

func TestAgeSimilarityWeightsOverIndexedBuckets(t *testing.T) {
	m := testMatcher()
	// The over-indexed 21-29 bucket overlaps the brand range fully and
	// should pull the score above the unweighted mean of the buckets.
	artistAge := map[string]float64{
		"21-29 Years Old": 2.0,
		"50-59 Years Old": -0.5,
	}
	got := m.AgeSimilarity(artistAge, "21-29")
	if got <= 0.5 || got > 1.0 {
		t.Errorf("weighted overlap: got %v, want in (0.5, 1.0]", got)
	}
}

func TestGenderSimilarity(t *testing.T) {
	m := testMatcher()
	tests := []struct {
		name   string
		artist map[string]float64
		brand  string
		want   float64
	}{
		{"all genders", map[string]float64{"Female": 0.7}, "All Genders", 0.75},
		{"missing artist data", nil, "Female 21-29", 0.75},
		{"female skew match", map[string]float64{"Female": 0.7, "Male": 0.3}, "Female", 0.9},
		{"male skew match", map[string]float64{"Female": 0.3, "Male": 0.65}, "Male 25-54", 0.9},
		{"balanced audience", map[string]float64{"Female": 0.52, "Male": 0.48}, "Female", 0.8},
		{"mismatch", map[string]float64{"Female": 0.3, "Male": 0.7}, "Female", 0.6},
	}
	for _, tt := range tests {
		if got := m.GenderSimilarity(tt.artist, tt.brand); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIncomeSimilarityEqualBrackets(t *testing.T) {
	m := testMatcher()
	// Artist entirely in one bracket, brand targeting the same bracket:
	// distance 0 so similarity 1.0.
	artist := map[string]float64{"$50K-$74K": 1.0}
	if got := m.IncomeSimilarity(artist, "$50K-$74K"); got != 1.0 {
		t.Errorf("equal brackets: got %v, want 1.0", got)
	}
}

func TestIncomeSimilarityMonotoneInDistance(t *testing.T) {
	m := testMatcher()
	artist := map[string]float64{"Less than $30K": 1.0}
	brands := []string{"Less than $30K", "$30K-$49K", "$50K-$74K", "$75K-$125k", "$125K or More"}
	prev := math.Inf(1)
	for _, brand := range brands {
		got := m.IncomeSimilarity(artist, brand)
		if got > prev {
			t.Errorf("similarity to %q (%v) increased over closer bracket (%v)", brand, got, prev)
		}
		prev = got
	}
}

func TestIncomeSimilarityDefaults(t *testing.T) {
	m := testMatcher()
	// Both sides unknown collapse to the middle bracket: similarity 1.
	if got := m.IncomeSimilarity(nil, "no income data"); got != 1.0 {
		t.Errorf("both defaulted: got %v, want 1.0", got)
	}
}

func TestEthnicitySimilarity(t *testing.T) {
	m := testMatcher()
	tests := []struct {
		name   string
		artist map[string]float64
		brand  string
		want   float64
	}{
		{"missing artist data", nil, "Hispanic", 0.7},
		{"missing brand data", map[string]float64{"White": 0.5}, "", 0.7},
		{"hispanic match", map[string]float64{"Hispanic": 0.5}, "Hispanic", 0.5 + 0.3*1.5},
		{"no overlap", map[string]float64{"Asian": 0.5}, "Hispanic", 0.5},
		{"capped at one", map[string]float64{"White": 2.0}, "White", 1.0},
	}
	for _, tt := range tests {
		got := m.EthnicitySimilarity(tt.artist, tt.brand)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAttributeAffinityHardSeltzer(t *testing.T) {
	m := testMatcher()
	score, matches := m.AttributeAffinity(
		map[string]float64{"hard seltzer": 2.0},
		"Beer, Wine, Liquor",
	)
	if score <= 0.3 {
		t.Errorf("hard seltzer vs beer/wine/liquor: score %v, want > 0.3", score)
	}
	if matches < 1 {
		t.Errorf("hard seltzer vs beer/wine/liquor: matches %d, want >= 1", matches)
	}
}

func TestAttributeAffinityNoMatch(t *testing.T) {
	m := testMatcher()
	score, matches := m.AttributeAffinity(
		map[string]float64{"dog owners": 1.0},
		"Airlines",
	)
	if score != 0.2 || matches != 0 {
		t.Errorf("unrelated attribute: got (%v, %d), want (0.2, 0)", score, matches)
	}
}

func TestAttributeAffinityEmptyInputs(t *testing.T) {
	m := testMatcher()
	if score, matches := m.AttributeAffinity(nil, "Beverage"); score != 0 || matches != 0 {
		t.Errorf("no attributes: got (%v, %d), want (0, 0)", score, matches)
	}
	if score, matches := m.AttributeAffinity(map[string]float64{"moms": 1}, ""); score != 0 || matches != 0 {
		t.Errorf("no industries: got (%v, %d), want (0, 0)", score, matches)
	}
}

func TestScorePairBounds(t *testing.T) {
	m := testMatcher()
	artists := []Artist{
		{Name: "empty", Audience: ParseArtistAudience("")},
		{Name: "full", Audience: ArtistAudience{
			Gender:     map[string]float64{"Female": 0.7, "Male": 0.3},
			Ethnicity:  map[string]float64{"Hispanic": 1.2},
			Income:     map[string]float64{"$50K-$74K": 0.8},
			Age:        map[string]float64{"21-29 Years Old": 2.0},
			Attributes: map[string]float64{"hard seltzer": 2.0, "movie goers": -0.4},
		}},
	}
	brands := []Brand{
		{Name: "no data"},
		{Name: "seltzer", Industries: "Beer, Wine, Liquor", Audience: BrandAudience{
			"Age": "21-29", "Gender": "Female", "Household Income": "$50K-$74K",
			"Ethnicity": "Hispanic", "Region": "Southwest",
		}},
	}
	for _, a := range artists {
		for _, b := range brands {
			s := m.ScorePair(a, b)
			if s.Composite < 0 || s.Composite > 100 {
				t.Errorf("%s/%s: composite %v out of [0,100]", a.Name, b.Name, s.Composite)
			}
			if s.CILower < 0 || s.CIUpper > 100 || s.CILower > s.CIUpper {
				t.Errorf("%s/%s: bad confidence interval [%v, %v]",
					a.Name, b.Name, s.CILower, s.CIUpper)
			}
		}
	}
}

func TestAssignTier(t *testing.T) {
	const mean, sd = 50.0, 10.0
	tests := []struct {
		score float64
		want  Tier
	}{
		{71, TierExceptional}, // more than two deviations above the mean
		{70, TierStrong},      // exactly two deviations is not "more than"
		{61, TierStrong},
		{51, TierGood},
		{50, TierFair}, // exactly at the mean
		{30, TierFair},
	}
	for _, tt := range tests {
		if got := AssignTier(tt.score, mean, sd); got != tt.want {
			t.Errorf("AssignTier(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPValue(t *testing.T) {
	// At the mean the two-sided p-value is 1; two deviations out it is
	// close to the familiar 0.0455.
	if got := PValue(50, 50, 10); math.Abs(got-1) > 1e-12 {
		t.Errorf("p at mean = %v, want 1", got)
	}
	if got := PValue(70, 50, 10); math.Abs(got-0.0455) > 0.0005 {
		t.Errorf("p at +2 sigma = %v, want ~0.0455", got)
	}
	if got := PValue(30, 50, 10); math.Abs(got-PValue(70, 50, 10)) > 1e-12 {
		t.Errorf("p-value not symmetric: %v vs %v", got, PValue(70, 50, 10))
	}
}

func TestFinalizeRanksAndTiers(t *testing.T) {
	m := testMatcher()
	artist := Artist{Name: "The Night Owls", Audience: ArtistAudience{
		Age:        map[string]float64{"21-29 Years Old": 1.5},
		Attributes: map[string]float64{"hard seltzer": 2.0},
	}}
	brands := []Brand{
		{Name: "SeltzerCo", Industries: "Beer, Wine, Liquor",
			Audience: BrandAudience{"Age": "21-29"}},
		{Name: "MidBrand", Audience: BrandAudience{"Age": "28-43"}},
		{Name: "FarBrand", Audience: BrandAudience{"Age": "50-59"}},
	}
	var results []Result
	for _, b := range brands {
		results = append(results, Result{Artist: artist, Brand: b, Score: m.ScorePair(artist, b)})
	}
	Finalize(results)

	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("result %d: rank %d, want %d", i, r.Rank, i+1)
		}
		if i > 0 && r.Score.Composite > results[i-1].Score.Composite {
			t.Errorf("result %d not sorted by descending score", i)
		}
		if r.Tier == "" {
			t.Errorf("result %d: missing tier", i)
		}
	}
	if results[0].Brand.Name != "SeltzerCo" {
		t.Errorf("best match = %q, want SeltzerCo", results[0].Brand.Name)
	}

	sum := Summarize(results)
	if sum.Total != 3 {
		t.Errorf("summary total = %d, want 3", sum.Total)
	}
	if sum.Min > sum.Mean || sum.Mean > sum.Max {
		t.Errorf("summary ordering broken: min %v mean %v max %v", sum.Min, sum.Mean, sum.Max)
	}
}
