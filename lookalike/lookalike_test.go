package lookalike

import (
	"math"
	"testing"
)

// testCustomers builds a customer population with three obviously
// distinct behavioural groups plus an outlier.
func testCustomers() []Profile {
	return []Profile{
		// Big diversified portfolios.
		{AccountID: "c1", AccountName: "MegaCorp", BrandCount: 60, AvgBrandSpend: 8_000_000,
			TotalContacts: 120, ManagerContacts: 30, DirectorContacts: 20, MarketingContacts: 40,
			TotalMeetings: 90, AvgDealSize: 900_000, TotalRevenue: 5_000_000, DealCount: 6},
		{AccountID: "c2", AccountName: "OmniBrands", BrandCount: 45, AvgBrandSpend: 6_000_000,
			TotalContacts: 100, ManagerContacts: 25, DirectorContacts: 15, MarketingContacts: 30,
			TotalMeetings: 70, AvgDealSize: 800_000, TotalRevenue: 4_000_000, DealCount: 5},
		// Beverage specialists.
		{AccountID: "c3", AccountName: "SipCo", BrandCount: 8, BeverageBrands: 7,
			AvgBrandSpend: 4_000_000, TotalContacts: 20, MarketingContacts: 8,
			TotalMeetings: 15, AvgDealSize: 400_000, TotalRevenue: 1_200_000, DealCount: 3},
		{AccountID: "c4", AccountName: "BrewBros", BrandCount: 6, BeverageBrands: 5,
			AvgBrandSpend: 3_500_000, TotalContacts: 18, MarketingContacts: 6,
			TotalMeetings: 12, AvgDealSize: 350_000, TotalRevenue: 1_000_000, DealCount: 3},
		// Deeply engaged relationship accounts.
		{AccountID: "c5", AccountName: "TalkALot", BrandCount: 3, AvgBrandSpend: 500_000,
			TotalContacts: 10, ManagerContacts: 4, TotalMeetings: 80,
			AvgDealSize: 250_000, TotalRevenue: 750_000, DealCount: 3},
		{AccountID: "c6", AccountName: "MeetAgain", BrandCount: 2, AvgBrandSpend: 400_000,
			TotalContacts: 8, ManagerContacts: 3, TotalMeetings: 60,
			AvgDealSize: 200_000, TotalRevenue: 600_000, DealCount: 3},
		// Small efficient account.
		{AccountID: "c7", AccountName: "OneShot", BrandCount: 1, AvgBrandSpend: 200_000,
			TotalContacts: 3, TotalMeetings: 2, AvgDealSize: 150_000,
			TotalRevenue: 150_000, DealCount: 1},
	}
}

func TestProfileVectorMatchesFeatureNames(t *testing.T) {
	if got, want := len(Profile{}.vector()), len(FeatureNames); got != want {
		t.Errorf("vector length %d does not match %d feature names", got, want)
	}
}

func TestMeetingPenetration(t *testing.T) {
	p := Profile{TotalContacts: 10, TotalMeetings: 25}
	if got := p.MeetingPenetration(); got != 2.5 {
		t.Errorf("penetration = %v, want 2.5", got)
	}
	if got := (Profile{}).MeetingPenetration(); got != 0 {
		t.Errorf("penetration with no contacts = %v, want 0", got)
	}
}

func TestFitScaler(t *testing.T) {
	s := fitScaler([][]float64{{1, 10}, {3, 10}})
	if s.mean[0] != 2 || s.mean[1] != 10 {
		t.Errorf("means = %v, want [2 10]", s.mean)
	}
	if s.std[0] != 1 {
		t.Errorf("std[0] = %v, want 1", s.std[0])
	}
	// Zero-spread features keep a unit deviation.
	if s.std[1] != 1 {
		t.Errorf("std for constant feature = %v, want 1", s.std[1])
	}
	got := s.transform([]float64{3, 10})
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("transform = %v, want [1 0]", got)
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float64{1, 0}, []float64{1, 0}); math.Abs(got-1) > 1e-12 {
		t.Errorf("identical vectors: %v, want 1", got)
	}
	if got := cosine([]float64{1, 0}, []float64{0, 1}); math.Abs(got) > 1e-12 {
		t.Errorf("orthogonal vectors: %v, want 0", got)
	}
	if got := cosine([]float64{1, 0}, []float64{-1, 0}); math.Abs(got+1) > 1e-12 {
		t.Errorf("opposed vectors: %v, want -1", got)
	}
	if got := cosine([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Errorf("zero vector: %v, want 0", got)
	}
}

func TestFit(t *testing.T) {
	m, err := Fit(testCustomers())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(m.Archetypes) != NumArchetypes {
		t.Fatalf("archetype count = %d, want %d", len(m.Archetypes), NumArchetypes)
	}

	// Every customer belongs to exactly one archetype and every
	// archetype name appears once.
	seen := map[string]int{}
	members := 0
	for _, a := range m.Archetypes {
		seen[a.Name]++
		members += len(a.Members)
	}
	for _, name := range archetypeNames {
		if seen[name] != 1 {
			t.Errorf("archetype %q appears %d times, want 1", name, seen[name])
		}
	}
	if members != len(m.Customers) {
		t.Errorf("archetype members total %d, want %d", members, len(m.Customers))
	}
	for i := range m.Customers {
		if name := m.ArchetypeOf(i); name == "" {
			t.Errorf("customer %d has no archetype", i)
		}
	}
}

// TestFitDeterministic fits the same population repeatedly and checks
// that every customer lands in the same archetype each time. Archetype
// membership drives prospect scores, tiers and the per-archetype
// exports, so the partition must be a pure function of the input.
func TestFitDeterministic(t *testing.T) {
	customers := testCustomers()
	// Grow the population with near-neighbours of each group to give
	// the clustering genuine ambiguity to resolve.
	for _, c := range testCustomers()[:5] {
		c.AccountID += "-b"
		c.AccountName += " II"
		c.BrandCount++
		c.TotalMeetings += 5
		customers = append(customers, c)
	}

	first, err := Fit(customers)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for run := 0; run < 10; run++ {
		m, err := Fit(customers)
		if err != nil {
			t.Fatalf("Fit run %d: %v", run, err)
		}
		for i := range customers {
			if got, want := m.ArchetypeOf(i), first.ArchetypeOf(i); got != want {
				t.Fatalf("run %d: customer %d archetype %q, first fit had %q",
					run, i, got, want)
			}
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0}, {5, 5}, {5.1, 5}, {0, 5}, {0.1, 5}, {2.5, 2.5},
	}
	first := kMeans(points, 3)
	for run := 0; run < 10; run++ {
		got := kMeans(points, 3)
		for i := range points {
			if got[i] != first[i] {
				t.Fatalf("run %d: point %d in cluster %d, first run had %d",
					run, i, got[i], first[i])
			}
		}
	}
}

func TestFitFewCustomers(t *testing.T) {
	m, err := Fit(testCustomers()[:2])
	if err != nil {
		t.Fatalf("Fit with 2 customers: %v", err)
	}
	if len(m.Archetypes) != 2 {
		t.Errorf("archetype count = %d, want 2", len(m.Archetypes))
	}
	if _, err := Fit(nil); err == nil {
		t.Error("Fit with no customers: expected error")
	}
}

func TestScoreProspect(t *testing.T) {
	customers := testCustomers()
	m, err := Fit(customers)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// A prospect that is a near-copy of the first customer should score
	// very highly and inherit that customer's archetype.
	twin := customers[0]
	twin.AccountID = "p1"
	twin.AccountName = "MegaCorp Twin"
	twin.TotalRevenue = 0
	twin.DealCount = 0
	twin.AvgDealSize = PlaceholderDealSize

	score := m.ScoreProspect(twin)
	if score.Score < 60 {
		t.Errorf("near-twin prospect score = %d, want >= 60", score.Score)
	}
	validName := false
	for _, name := range archetypeNames {
		if score.BestArchetype == name {
			validName = true
		}
	}
	if !validName {
		t.Errorf("twin archetype %q is not a known archetype", score.BestArchetype)
	}
	if score.Score < -100 || score.Score > 100 {
		t.Errorf("score %d outside [-100, 100]", score.Score)
	}
}

func TestScoreProspectsSorted(t *testing.T) {
	customers := testCustomers()
	m, err := Fit(customers)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	prospects := []Profile{
		{AccountID: "p1", AccountName: "Nothing Inc", AvgDealSize: PlaceholderDealSize},
		{AccountID: "p2", AccountName: "BigPortfolio", BrandCount: 50,
			AvgBrandSpend: 7_000_000, TotalContacts: 110, ManagerContacts: 28,
			DirectorContacts: 18, MarketingContacts: 35, TotalMeetings: 80,
			AvgDealSize: PlaceholderDealSize},
	}
	scored := m.ScoreProspects(prospects)
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not sorted descending at %d", i)
		}
	}
	if scored[0].Profile.AccountName != "BigPortfolio" {
		t.Errorf("best prospect = %q, want BigPortfolio", scored[0].Profile.AccountName)
	}
}

func TestTierBins(t *testing.T) {
	bins := DefaultTierBins()
	tests := []struct {
		score int
		want  string
	}{
		{100, "Very High"}, {86, "Very High"}, {85, "High"}, {76, "High"},
		{75, "Medium"}, {61, "Medium"}, {60, "Low"}, {0, "Low"}, {-20, "Low"},
	}
	for _, tt := range tests {
		if got := bins.Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
