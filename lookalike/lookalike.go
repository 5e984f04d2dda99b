// Package lookalike finds prospect accounts that resemble existing
// customers. Customers are clustered into named archetypes with k-means
// over standardized behavioural features; each prospect is then scored
// by cosine similarity against the customer population, inheriting the
// archetype of its closest customer.
package lookalike

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Profile is an account's behavioural feature profile, built from
// brand, contact and meeting aggregates. Revenue fields are only known
// for customers; prospects carry the placeholder deal size.
type Profile struct {
	AccountID            string
	AccountName          string
	TotalRevenue         float64
	DealCount            int
	AvgDealSize          float64
	BrandCount           int
	AvgBrandSpend        float64
	MaxBrandSpend        float64
	BeverageBrands       int
	EntertainmentBrands  int
	AutomotiveBrands     int
	FoodBrands           int
	TotalContacts        int
	ManagerContacts      int
	DirectorContacts     int
	VPContacts           int
	MarketingContacts    int
	BrandContacts        int
	MediaContacts        int
	TotalMeetings        int
	NewBusinessMeetings  int
	ContactsWithMeetings int
}

// PlaceholderDealSize stands in for the unknowable deal size of a
// prospect so prospect vectors stay comparable with customer vectors.
const PlaceholderDealSize = 500_000

// MeetingPenetration is the ratio of meetings held to contacts known at
// the account, the measure of how deeply an account is engaged.
func (p Profile) MeetingPenetration() float64 {
	if p.TotalContacts == 0 {
		return 0
	}
	return float64(p.TotalMeetings) / float64(p.TotalContacts)
}

// FeatureNames documents the clustering feature order used by
// Profile.vector, in order.
var FeatureNames = []string{
	"brand_count", "avg_brand_spend", "beverage_brands", "entertainment_brands",
	"total_contacts", "manager_contacts", "director_contacts", "marketing_contacts",
	"total_meetings", "meeting_penetration", "avg_deal_size",
}

// vector projects the profile onto the clustering feature space.
func (p Profile) vector() []float64 {
	return []float64{
		float64(p.BrandCount),
		p.AvgBrandSpend,
		float64(p.BeverageBrands),
		float64(p.EntertainmentBrands),
		float64(p.TotalContacts),
		float64(p.ManagerContacts),
		float64(p.DirectorContacts),
		float64(p.MarketingContacts),
		float64(p.TotalMeetings),
		p.MeetingPenetration(),
		p.AvgDealSize,
	}
}

// scaler standardizes feature vectors to the customer population's
// mean and standard deviation.
type scaler struct {
	mean, std []float64
}

// fitScaler computes per-feature mean and population standard
// deviation. Features with zero spread keep a unit deviation so the
// transform stays defined.
func fitScaler(vectors [][]float64) scaler {
	n := len(vectors)
	dims := len(vectors[0])
	s := scaler{mean: make([]float64, dims), std: make([]float64, dims)}
	for _, v := range vectors {
		floats.Add(s.mean, v)
	}
	floats.Scale(1/float64(n), s.mean)
	for _, v := range vectors {
		for d := range v {
			diff := v[d] - s.mean[d]
			s.std[d] += diff * diff
		}
	}
	for d := range s.std {
		s.std[d] = math.Sqrt(s.std[d] / float64(n))
		if s.std[d] == 0 {
			s.std[d] = 1
		}
	}
	return s
}

// transform standardizes one vector.
func (s scaler) transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for d := range v {
		out[d] = (v[d] - s.mean[d]) / s.std[d]
	}
	return out
}

// archetypeNames are the business labels for the customer clusters.
var archetypeNames = []string{
	"Portfolio Powerhouses",
	"Beverage Specialists",
	"Relationship Builders",
	"Efficiency Seekers",
}

// NumArchetypes is the number of customer clusters. Chosen on business
// grounds, not from the elbow curve.
const NumArchetypes = 4

// Archetype is one customer cluster.
type Archetype struct {
	Name    string
	Members []int // indices into the model's customer slice
}

// Model holds the fitted clustering: the customer profiles, the scaler
// fitted on them, their scaled vectors and the named archetypes.
type Model struct {
	Customers  []Profile
	Archetypes []Archetype

	scaler      scaler
	scaled      [][]float64
	archetypeOf []int // customer index -> archetype index
}

// ArchetypeOf returns the archetype name for customer i.
func (m *Model) ArchetypeOf(i int) string {
	return m.Archetypes[m.archetypeOf[i]].Name
}

// Fit clusters the customer profiles into NumArchetypes archetypes.
// With fewer customers than archetypes the cluster count shrinks to the
// customer count. The clustering is fully deterministic: farthest-point
// initialization and first-index tie-breaking mean repeated fits of the
// same population always produce the same partition, so archetype
// membership, prospect scores and exports are reproducible run to run.
func Fit(customers []Profile) (*Model, error) {
	if len(customers) == 0 {
		return nil, fmt.Errorf("no customer profiles to cluster")
	}

	vectors := make([][]float64, len(customers))
	for i, c := range customers {
		vectors[i] = c.vector()
	}
	s := fitScaler(vectors)

	m := &Model{
		Customers:   customers,
		scaler:      s,
		scaled:      make([][]float64, len(customers)),
		archetypeOf: make([]int, len(customers)),
	}
	for i, v := range vectors {
		m.scaled[i] = s.transform(v)
	}

	k := NumArchetypes
	if len(customers) < k {
		k = len(customers)
	}
	clusterOf := kMeans(m.scaled, k)

	m.Archetypes = nameClusters(customers, clusterOf, k)
	copy(m.archetypeOf, clusterOf)
	return m, nil
}

// maxKMeansIterations bounds Lloyd's algorithm; assignments converge
// long before this on populations of this size.
const maxKMeansIterations = 100

// kMeans partitions points into k clusters with Lloyd's algorithm.
// Initial centroids come from deterministic farthest-point selection
// and all ties break toward the lower index, so the partition is a pure
// function of the input.
func kMeans(points [][]float64, k int) []int {
	centroids := initialCentroids(points, k)
	assign := make([]int, len(points))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, cent := range centroids {
				if d := floats.Distance(p, cent, 2); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Recompute centroids as member means. A cluster left empty
		// takes the point farthest from its previous centroid.
		dims := len(points[0])
		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dims)
		}
		for i, p := range points {
			floats.Add(next[assign[i]], p)
			counts[assign[i]]++
		}
		for c := range next {
			if counts[c] == 0 {
				next[c] = farthestFrom(points, centroids[c])
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}
		centroids = next
	}
	return assign
}

// initialCentroids selects k starting centroids: the first point, then
// repeatedly the point farthest from all centroids chosen so far.
func initialCentroids(points [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), points[0]...))
	for len(centroids) < k {
		best, bestDist := 0, math.Inf(-1)
		for i, p := range points {
			nearest := math.Inf(1)
			for _, cent := range centroids {
				if d := floats.Distance(p, cent, 2); d < nearest {
					nearest = d
				}
			}
			if nearest > bestDist {
				best, bestDist = i, nearest
			}
		}
		centroids = append(centroids, append([]float64(nil), points[best]...))
	}
	return centroids
}

// farthestFrom returns a copy of the point farthest from v.
func farthestFrom(points [][]float64, v []float64) []float64 {
	best, bestDist := 0, math.Inf(-1)
	for i, p := range points {
		if d := floats.Distance(p, v, 2); d > bestDist {
			best, bestDist = i, d
		}
	}
	return append([]float64(nil), points[best]...)
}

// nameClusters maps raw cluster indices to named archetypes by ranking
// cluster characteristics: the largest mean brand portfolio becomes
// Portfolio Powerhouses, the strongest beverage focus Beverage
// Specialists, the deepest meeting penetration Relationship Builders,
// and the remainder Efficiency Seekers.
func nameClusters(customers []Profile, clusterOf []int, k int) []Archetype {
	type stats struct {
		members     []int
		brandMean   float64
		bevMean     float64
		penetration float64
	}
	byCluster := make([]stats, k)
	for i, c := range clusterOf {
		byCluster[c].members = append(byCluster[c].members, i)
		byCluster[c].brandMean += float64(customers[i].BrandCount)
		byCluster[c].bevMean += float64(customers[i].BeverageBrands)
		byCluster[c].penetration += customers[i].MeetingPenetration()
	}
	for c := range byCluster {
		if n := float64(len(byCluster[c].members)); n > 0 {
			byCluster[c].brandMean /= n
			byCluster[c].bevMean /= n
			byCluster[c].penetration /= n
		}
	}

	archetypes := make([]Archetype, k)
	assigned := make([]bool, k)
	pick := func(metric func(stats) float64) int {
		best, bestVal := -1, math.Inf(-1)
		for c := range byCluster {
			if assigned[c] {
				continue
			}
			if v := metric(byCluster[c]); v > bestVal {
				best, bestVal = c, v
			}
		}
		assigned[best] = true
		return best
	}

	metrics := []func(stats) float64{
		func(s stats) float64 { return s.brandMean },
		func(s stats) float64 { return s.bevMean },
		func(s stats) float64 { return s.penetration },
		func(s stats) float64 { return 0 }, // remainder
	}
	for n := 0; n < k; n++ {
		c := pick(metrics[n])
		archetypes[c] = Archetype{Name: archetypeNames[n], Members: byCluster[c].members}
	}
	return archetypes
}

// cosine returns the cosine similarity of two vectors, 0 when either
// has zero magnitude.
func cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// ProspectScore is the lookalike result for one prospect account.
type ProspectScore struct {
	Profile        Profile
	Score          int // best customer similarity on a 0-100 scale
	BestArchetype  string
	ArchetypeScore int // mean similarity to the best archetype's members
	BestSimilarity float64
}

// ScoreProspect scores one prospect against the fitted model: cosine
// similarity to every customer picks the best match and its archetype,
// and the mean similarity to that archetype's members gives the
// archetype score.
func (m *Model) ScoreProspect(p Profile) ProspectScore {
	v := m.scaler.transform(p.vector())

	best, bestSim := 0, math.Inf(-1)
	for i, cv := range m.scaled {
		if sim := cosine(v, cv); sim > bestSim {
			best, bestSim = i, sim
		}
	}
	archetype := m.Archetypes[m.archetypeOf[best]]

	var archetypeSim float64
	for _, i := range archetype.Members {
		archetypeSim += cosine(v, m.scaled[i])
	}
	if n := len(archetype.Members); n > 0 {
		archetypeSim /= float64(n)
	}

	return ProspectScore{
		Profile:        p,
		Score:          int(bestSim * 100),
		BestArchetype:  archetype.Name,
		ArchetypeScore: int(archetypeSim * 100),
		BestSimilarity: bestSim,
	}
}

// ScoreProspects scores a batch and returns results sorted by
// descending score.
func (m *Model) ScoreProspects(prospects []Profile) []ProspectScore {
	scored := make([]ProspectScore, len(prospects))
	for i, p := range prospects {
		scored[i] = m.ScoreProspect(p)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// TierBins are the lookalike score cut points for priority tiers.
type TierBins struct {
	Medium   int `yaml:"medium"`
	High     int `yaml:"high"`
	VeryHigh int `yaml:"very_high"`
}

// DefaultTierBins returns the historical 60/75/85 cut points.
func DefaultTierBins() TierBins {
	return TierBins{Medium: 60, High: 75, VeryHigh: 85}
}

// Tier bands a lookalike score. Scores at a cut point fall into the
// lower band.
func (b TierBins) Tier(score int) string {
	switch {
	case score > b.VeryHigh:
		return "Very High"
	case score > b.High:
		return "High"
	case score > b.Medium:
		return "Medium"
	}
	return "Low"
}
