package match

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Tier labels a match by how far its score sits above the mean of the
// run's score distribution.
type Tier string

const (
	TierExceptional Tier = "Exceptional"
	TierStrong      Tier = "Strong"
	TierGood        Tier = "Good"
	TierFair        Tier = "Fair"
)

// Result is one scored artist-brand pair within a run, ranked within
// its artist and labelled against the run's score distribution.
type Result struct {
	Artist  Artist
	Brand   Brand
	Score   Score
	Rank    int // 1-based rank within the artist, best first
	Tier    Tier
	PValue  float64
	ZScore  float64
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// populationStdDev is the population (not sample) standard deviation,
// matching how the component spread has historically been measured.
func populationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := stat.Mean(xs, nil)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// AssignTier labels a score against the distribution mean and standard
// deviation: more than two deviations above the mean is Exceptional,
// more than one Strong, above the mean Good, and at or below the mean
// (including exactly at the mean) Fair.
func AssignTier(score, mean, stdDev float64) Tier {
	switch {
	case score > mean+2*stdDev:
		return TierExceptional
	case score > mean+stdDev:
		return TierStrong
	case score > mean:
		return TierGood
	}
	return TierFair
}

// normalSF is the survival function of the standard normal
// distribution.
func normalSF(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// PValue approximates a two-sided p-value for a score from a normal
// approximation of the score distribution.
func PValue(score, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 1
	}
	z := (score - mean) / stdDev
	return 2 * normalSF(math.Abs(z))
}

// Finalize sorts results by composite score within each artist,
// assigns per-artist ranks, and labels every result with its tier,
// z-score and p-value computed over the whole run's distribution.
// Results must all come from one run; the slice is sorted in place by
// artist then descending score.
func Finalize(results []Result) {
	if len(results) == 0 {
		return
	}
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score.Composite
	}
	m := mean(scores)
	sd := stat.StdDev(scores, nil)
	if math.IsNaN(sd) {
		sd = 0
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Artist.Name != results[j].Artist.Name {
			return results[i].Artist.Name < results[j].Artist.Name
		}
		return results[i].Score.Composite > results[j].Score.Composite
	})

	rank := 0
	lastArtist := ""
	for i := range results {
		if results[i].Artist.Name != lastArtist {
			lastArtist = results[i].Artist.Name
			rank = 0
		}
		rank++
		results[i].Rank = rank
		results[i].Tier = AssignTier(results[i].Score.Composite, m, sd)
		if sd > 0 {
			results[i].ZScore = (results[i].Score.Composite - m) / sd
		}
		results[i].PValue = PValue(results[i].Score.Composite, m, sd)
	}
}

// Summary describes a run's score distribution.
type Summary struct {
	Total     int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	TierCount map[Tier]int
}

// Summarize computes distribution statistics over finalized results.
func Summarize(results []Result) Summary {
	s := Summary{TierCount: map[Tier]int{}}
	if len(results) == 0 {
		return s
	}
	s.Total = len(results)
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score.Composite
		s.Min = math.Min(s.Min, r.Score.Composite)
		s.Max = math.Max(s.Max, r.Score.Composite)
		s.TierCount[r.Tier]++
	}
	s.Mean = mean(scores)
	if sd := stat.StdDev(scores, nil); !math.IsNaN(sd) {
		s.StdDev = sd
	}
	return s
}
