// Package match implements the artist-brand affinity scorer. For each
// (artist, brand) pair it computes bounded similarity scores over age,
// gender, income and ethnicity, a consumer-attribute affinity against
// the brand's industry tags and a geography component, then combines
// them into a weighted composite score on a 0-100 scale with a naive
// confidence interval derived from the spread of the components.
package match

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Weights are the component weights for the composite score. They are
// manually tuned constants with no validated derivation, so they live
// in configuration rather than code; DefaultWeights preserves the
// historical values.
type Weights struct {
	Age        float64 `yaml:"age"`
	Gender     float64 `yaml:"gender"`
	Income     float64 `yaml:"income"`
	Ethnicity  float64 `yaml:"ethnicity"`
	Attributes float64 `yaml:"attributes"`
	Geography  float64 `yaml:"geography"`
}

// DefaultWeights returns the historical component weighting.
func DefaultWeights() Weights {
	return Weights{
		Age:        0.25,
		Gender:     0.15,
		Income:     0.20,
		Ethnicity:  0.10,
		Attributes: 0.20,
		Geography:  0.10,
	}
}

// IndustryAttributeMap maps lower-cased consumer attribute keywords to
// the brand industry keywords they indicate affinity with.
type IndustryAttributeMap map[string][]string

// DefaultIndustryAttributeMap returns the static attribute-to-industry
// mapping used when none is configured.
func DefaultIndustryAttributeMap() IndustryAttributeMap {
	return IndustryAttributeMap{
		"hard seltzer":       {"beer, wine, liquor", "alcoholic beverages", "beverage"},
		"coffee houses":      {"restaurants", "coffee", "qsr", "starbucks", "dunkin"},
		"dog owners":         {"pet supplies", "pet food", "pet care"},
		"movie goers":        {"entertainment", "streaming", "media", "theaters"},
		"travelers":          {"airlines", "hotels", "travel", "hospitality"},
		"vapers":             {"tobacco", "vaping", "nicotine"},
		"tea drinkers":       {"beverages", "tea", "non-alcoholic"},
		"moms":               {"packaged foods", "household", "retail", "grocery"},
		"dads":               {"automotive", "tools", "sports", "beer"},
		"married":            {"insurance", "financial", "home improvement"},
		"quality conscious":  {"premium", "luxury", "high-end"},
		"budget conscious":   {"discount", "value", "walmart", "dollar"},
		"horror tv viewers":  {"streaming", "entertainment"},
		"reality tv viewers": {"entertainment", "media"},
		"podcast listeners":  {"media", "audio", "streaming"},
		"streamers":          {"streaming", "entertainment", "gaming"},
		"cosmetics":          {"cosmetics", "beauty", "personal care"},
		"snack food":         {"packaged foods", "snacks", "chips"},
		"fast casual":        {"restaurants", "qsr", "fast food"},
		"hybrid drivers":     {"automotive", "eco-friendly", "sustainable"},
		"suv drivers":        {"automotive", "trucks", "vehicles"},
	}
}

// Artist is an artist record with its parsed audience.
type Artist struct {
	Name     string
	Genre    string
	Audience ArtistAudience
}

// Brand is a brand as the scorer sees it: the industry tag string plus
// the parsed audience attributes.
type Brand struct {
	ID         string
	Name       string
	Industries string
	MediaSpend float64
	Audience   BrandAudience
}

// Score holds the component and composite scores for one pair.
// Composite and the component *Score fields are on a 0-100 scale; the
// *Similarity fields are in [0,1].
type Score struct {
	Composite           float64
	Demographic         float64
	Attribute           float64
	Geographic          float64
	AgeSimilarity       float64
	GenderSimilarity    float64
	IncomeSimilarity    float64
	EthnicitySimilarity float64
	AttributeMatches    int
	CILower             float64
	CIUpper             float64
	StdDev              float64
}

// Matcher scores artist-brand pairs using the configured weights and
// attribute map.
type Matcher struct {
	weights Weights
	attrMap IndustryAttributeMap
}

// NewMatcher returns a Matcher. Zero-valued weights or a nil map fall
// back to the defaults.
func NewMatcher(w Weights, m IndustryAttributeMap) *Matcher {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	if m == nil {
		m = DefaultIndustryAttributeMap()
	}
	return &Matcher{weights: w, attrMap: m}
}

// ageRange is an inclusive age span.
type ageRange struct {
	lo, hi float64
}

// ageRanges are the known audience age buckets. "60+" is capped at 75
// to keep overlap arithmetic bounded.
var ageRanges = map[string]ageRange{
	"16-20": {16, 20},
	"21-29": {21, 29},
	"28-43": {28, 43},
	"30-39": {30, 39},
	"40-49": {40, 49},
	"44-59": {44, 59},
	"50-59": {50, 59},
	"60+":   {60, 75},
}

var ageSpanRe = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)

// findAgeRange locates a known age bucket inside free text, falling
// back to any "lo-hi" span it can parse directly.
func findAgeRange(s string) (ageRange, bool) {
	for label, r := range ageRanges {
		if strings.Contains(s, label) {
			return r, true
		}
	}
	if m := ageSpanRe.FindStringSubmatch(s); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		if hi > lo {
			return ageRange{lo, hi}, true
		}
	}
	return ageRange{}, false
}

// AgeSimilarity computes the overlap between the brand's target age
// range and the artist's age buckets, weighting each bucket by
// 1 + max(0, index) so over-indexed buckets dominate. A brand range
// identical to the artist's only bucket scores 1.0; fully disjoint
// ranges score 0.0; an unparseable brand range scores a neutral 0.5.
func (m *Matcher) AgeSimilarity(artistAge map[string]float64, brandAge string) float64 {
	brandRange, ok := findAgeRange(brandAge)
	if !ok {
		return 0.5
	}

	var total, weight float64
	for label, index := range artistAge {
		r, ok := findAgeRange(label)
		if !ok {
			continue
		}
		maxOverlap := math.Min(r.hi-r.lo, brandRange.hi-brandRange.lo)
		if maxOverlap <= 0 {
			continue
		}
		overlap := math.Max(0, math.Min(r.hi, brandRange.hi)-math.Max(r.lo, brandRange.lo))
		w := 1 + math.Max(0, index)
		total += (overlap / maxOverlap) * w
		weight += w
	}
	if weight == 0 {
		return 0.5
	}
	return total / weight
}

// GenderSimilarity scores the match between the artist's gender split
// and the brand's target. "All Genders" and missing artist data score a
// neutral-positive 0.75; a strong (>60%) skew matching the brand target
// scores 0.9; a balanced audience scores 0.8; everything else 0.6.
func (m *Matcher) GenderSimilarity(artistGender map[string]float64, brandGender string) float64 {
	if brandGender == "All Genders" || brandGender == "" || len(artistGender) == 0 {
		return 0.75
	}
	female := artistGender["Female"]
	male := artistGender["Male"]
	switch {
	case female > 0.6 && strings.Contains(brandGender, "Female"):
		return 0.9
	case male > 0.6 && strings.Contains(brandGender, "Male"):
		return 0.9
	case math.Abs(female-0.5) < 0.1:
		return 0.8
	}
	return 0.6
}

// incomeBracket maps a bracket label onto the 1-6 income scale.
type incomeBracket struct {
	label string
	level float64
}

// incomeBrackets covers the bracket labels found in both the artist
// audience data and brand descriptions. Order matters for the brand
// substring lookup.
var incomeBrackets = []incomeBracket{
	{"Less than $30K", 1},
	{"$25,000 - $50,000", 2},
	{"$30K-$49K", 2},
	{"$50K-$74K", 3},
	{"$50,000 - $100,000", 3.5},
	{"$75K-$125k", 4},
	{"$100,000 - $150,000", 5},
	{"$125K or More", 6},
	{"$150,000+", 6},
}

// incomeLevel resolves an exact bracket label.
func incomeLevel(label string) (float64, bool) {
	for _, b := range incomeBrackets {
		if b.label == label {
			return b.level, true
		}
	}
	return 0, false
}

// maxIncomeDistance is the largest possible distance on the bracket
// scale, used to normalize the similarity.
const maxIncomeDistance = 5

// IncomeSimilarity maps both audiences onto the income bracket scale
// and returns 1 - distance/maxIncomeDistance, clamped to [0,1]. Equal
// brackets therefore score 1.0 and similarity decreases monotonically
// with bracket distance. Unknown brackets default to the middle of the
// scale.
func (m *Matcher) IncomeSimilarity(artistIncome map[string]float64, brandIncome string) float64 {
	brandLevel := 3.5
	for _, b := range incomeBrackets {
		if strings.Contains(brandIncome, b.label) {
			brandLevel = b.level
			break
		}
	}

	var artistLevel, weight float64
	for bracket, index := range artistIncome {
		level, ok := incomeLevel(bracket)
		if !ok {
			continue
		}
		w := 1 + math.Max(0, index)
		artistLevel += level * w
		weight += w
	}
	if weight > 0 {
		artistLevel /= weight
	} else {
		artistLevel = 3.5
	}

	similarity := 1 - math.Abs(artistLevel-brandLevel)/maxIncomeDistance
	return math.Max(0, math.Min(1, similarity))
}

// ethnicityGroups are the groups checked for a primary-ethnicity match,
// in precedence order.
var ethnicityGroups = []string{"White", "Hispanic", "African American", "Asian"}

// EthnicitySimilarity checks for a primary ethnicity match between the
// brand target and the artist's over-indexed groups. Missing data on
// either side scores a neutral 0.7; otherwise a 0.5 base is boosted by
// 0.3*(1+index) for the first matching group, capped at 1.
func (m *Matcher) EthnicitySimilarity(artistEthnicity map[string]float64, brandEthnicity string) float64 {
	if len(artistEthnicity) == 0 || brandEthnicity == "" {
		return 0.7
	}
	score := 0.5
	for _, group := range ethnicityGroups {
		if strings.Contains(brandEthnicity, group) && artistEthnicity[group] > 0 {
			score += 0.3 * (1 + artistEthnicity[group])
			break
		}
	}
	return math.Min(1, score)
}

// AttributeAffinity looks up each artist consumer attribute in the
// industry-attribute map and scores attributes whose mapped industries
// appear in the brand's industry tags. Positive-index matches score
// (1+index)/3, non-positive matches a flat 0.3; the total is normalized
// over all artist attributes and capped at 1. With no matches a small
// base score of 0.2 applies. Returns the score and the match count.
func (m *Matcher) AttributeAffinity(artistAttrs map[string]float64, brandIndustries string) (float64, int) {
	if len(artistAttrs) == 0 || brandIndustries == "" {
		return 0, 0
	}
	industries := strings.ToLower(brandIndustries)

	var total float64
	var matches int
	for attr, index := range artistAttrs {
		attrLower := strings.ToLower(attr)
		for keyword, industryList := range m.attrMap {
			if !strings.Contains(attrLower, keyword) {
				continue
			}
			for _, industry := range industryList {
				if strings.Contains(industries, industry) {
					score := 0.3
					if index > 0 {
						score = (1 + index) / 3
					}
					total += score
					matches++
					break
				}
			}
		}
	}

	if matches == 0 {
		return 0.2, 0
	}
	return math.Min(1, total/float64(len(artistAttrs))), matches
}

// GeographySimilarity is a placeholder geography component: a neutral
// 0.7, nudged to 0.8 when the brand declares a target region.
func (m *Matcher) GeographySimilarity(brand BrandAudience) float64 {
	if brand["Region"] != "" {
		return 0.8
	}
	return 0.7
}

// ScorePair computes the full score for one artist-brand pair. The
// composite is the weighted sum of the six components scaled to 0-100
// and is always within [0,100] because every component is within [0,1]
// and the weights sum to 1.
func (m *Matcher) ScorePair(artist Artist, brand Brand) Score {
	age := m.AgeSimilarity(artist.Audience.Age, brand.Audience["Age"])
	gender := m.GenderSimilarity(artist.Audience.Gender, brand.Audience["Gender"])
	income := m.IncomeSimilarity(artist.Audience.Income, brand.Audience["Household Income"])
	ethnicity := m.EthnicitySimilarity(artist.Audience.Ethnicity, brand.Audience["Ethnicity"])
	attribute, attrMatches := m.AttributeAffinity(artist.Audience.Attributes, brand.Industries)
	geo := m.GeographySimilarity(brand.Audience)

	composite := (age*m.weights.Age +
		gender*m.weights.Gender +
		income*m.weights.Income +
		ethnicity*m.weights.Ethnicity +
		attribute*m.weights.Attributes +
		geo*m.weights.Geography) * 100
	// Configured weights need not sum to exactly 1.
	composite = math.Max(0, math.Min(100, composite))

	components := []float64{age, gender, income, ethnicity, attribute, geo}
	stdDev := populationStdDev(components) * 10

	return Score{
		Composite:           composite,
		Demographic:         mean([]float64{age, gender, income, ethnicity}) * 100,
		Attribute:           attribute * 100,
		Geographic:          geo * 100,
		AgeSimilarity:       age,
		GenderSimilarity:    gender,
		IncomeSimilarity:    income,
		EthnicitySimilarity: ethnicity,
		AttributeMatches:    attrMatches,
		CILower:             math.Max(0, composite-1.96*stdDev),
		CIUpper:             math.Min(100, composite+1.96*stdDev),
		StdDev:              stdDev,
	}
}
