package match

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ArtistAudience holds the demographic index tables parsed from an
// artist's audience text block. Gender and ethnicity values parsed from
// percentages are fractions in [0,1]; values parsed from "+1.2" style
// lines are over/under index values relative to the general population.
type ArtistAudience struct {
	Gender     map[string]float64
	Ethnicity  map[string]float64
	Income     map[string]float64
	Age        map[string]float64
	Attributes map[string]float64
}

// newArtistAudience returns an ArtistAudience with all maps allocated.
func newArtistAudience() ArtistAudience {
	return ArtistAudience{
		Gender:     map[string]float64{},
		Ethnicity:  map[string]float64{},
		Income:     map[string]float64{},
		Age:        map[string]float64{},
		Attributes: map[string]float64{},
	}
}

// audienceSections maps section heading lines in the audience text to
// section names.
var audienceSections = map[string]string{
	"Gender":              "gender",
	"Ethnicity":           "ethnicity",
	"Household Income":    "income",
	"Age":                 "age",
	"Consumer Attributes": "attributes",
}

// section returns the map for a named section.
func (a *ArtistAudience) section(name string) map[string]float64 {
	switch name {
	case "gender":
		return a.Gender
	case "ethnicity":
		return a.Ethnicity
	case "income":
		return a.Income
	case "age":
		return a.Age
	}
	return a.Attributes
}

// ParseArtistAudience parses the structured text block attached to each
// artist in the source spreadsheet. The block is a sequence of sections
// ("Gender", "Ethnicity", "Household Income", "Age", "Consumer
// Attributes"), each followed by label lines with a value on the next
// line, either a percentage ("54%") or an index ("+1.5" / "-0.3").
// Lines that fit neither pattern are skipped; a block with no parseable
// values yields an empty audience, which the scorer treats as neutral.
// Consumer attribute labels are lower-cased so they can be looked up in
// the industry-attribute map; demographic bucket labels keep their case.
func ParseArtistAudience(text string) ArtistAudience {
	parsed := newArtistAudience()
	lines := strings.Split(text, "\n")

	var current string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if name, ok := audienceSections[line]; ok {
			current = name
			continue
		}
		if current == "" || i+1 >= len(lines) {
			continue
		}
		label := line
		if current == "attributes" {
			label = strings.ToLower(label)
		}
		value := strings.TrimSpace(lines[i+1])
		switch {
		case strings.HasSuffix(value, "%"):
			pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
			if err == nil {
				parsed.section(current)[label] = pct / 100
				i++
			}
		case strings.HasPrefix(value, "+") || strings.HasPrefix(value, "-"):
			idx, err := strconv.ParseFloat(strings.ReplaceAll(value, " ", ""), 64)
			if err == nil {
				parsed.section(current)[label] = idx
				i++
			}
		}
	}
	return parsed
}

// BrandAudience is a brand's semi-structured audience description,
// keyed by dimension name ("Age", "Gender", "Household Income",
// "Ethnicity", "Region") with free-text values.
type BrandAudience map[string]string

// MalformedAudienceError reports an audience attribute blob that could
// not be parsed. Callers must handle it explicitly, typically by
// logging and scoring the brand with an empty audience.
type MalformedAudienceError struct {
	Reason string
}

func (e *MalformedAudienceError) Error() string {
	return fmt.Sprintf("malformed audience attributes: %s", e.Reason)
}

// ParseBrandAudience parses the Audience_Attributes__c blob. The
// Salesforce field holds Python-style dict literals with single quotes,
// so quotes are normalised before decoding. An empty or placeholder
// blob returns an empty audience with no error; anything undecodable
// returns an empty audience and a *MalformedAudienceError.
func ParseBrandAudience(raw string) (BrandAudience, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{'': ''}" || raw == `{"": ""}` {
		return BrandAudience{}, nil
	}
	normalised := strings.ReplaceAll(raw, "'", `"`)

	audience := BrandAudience{}
	if err := json.Unmarshal([]byte(normalised), &audience); err == nil {
		return audience, nil
	}

	// Some rows hold a single-element list wrapping the dict.
	var list []BrandAudience
	if err := json.Unmarshal([]byte(normalised), &list); err == nil {
		if len(list) == 0 {
			return BrandAudience{}, nil
		}
		return list[0], nil
	}

	return BrandAudience{}, &MalformedAudienceError{Reason: fmt.Sprintf("undecodable blob %.40q", raw)}
}
