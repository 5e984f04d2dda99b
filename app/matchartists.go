package app

// matchartists.go backs the match-artists command: artist-brand
// affinity scoring over the configured brand pool, with console
// summaries and CSV/Excel exports.

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/maxlive/prospector/artists"
	"github.com/maxlive/prospector/match"
	"github.com/maxlive/prospector/report"
)

// MatchArtists scores every artist in the spreadsheet against every
// eligible brand. Empty arguments fall back to the configured artists
// file and media spend floor.
func (a *App) MatchArtists(ctx context.Context, artistsFile string, minSpend float64) error {
	if artistsFile == "" {
		artistsFile = a.cfg.ArtistsFile
	}
	if minSpend <= 0 {
		minSpend = a.cfg.MinMediaSpend
	}

	artistList, err := artists.Load(artistsFile)
	if err != nil {
		return err
	}
	brandRows, err := a.db.GetBrands(ctx, minSpend)
	if err != nil {
		return fmt.Errorf("brand pool load error: %w", err)
	}

	brands := make([]match.Brand, 0, len(brandRows))
	for _, row := range brandRows {
		if a.excluded(row.AccountName) || a.excluded(row.Name) {
			continue
		}
		audience, err := match.ParseBrandAudience(row.AudienceAttributes)
		if err != nil {
			// Malformed audience blobs score neutrally but are never
			// silently swallowed.
			log.Warn("malformed brand audience", "brand", row.Name, "err", err)
		}
		industries := row.Industry
		if row.SubIndustry != "" {
			industries += ", " + row.SubIndustry
		}
		brands = append(brands, match.Brand{
			ID:         row.ID,
			Name:       row.Name,
			Industries: industries,
			MediaSpend: row.MediaSpend,
			Audience:   audience,
		})
	}
	log.Info("scoring affinity", "artists", len(artistList), "brands", len(brands))

	matcher := match.NewMatcher(a.cfg.Weights, a.cfg.IndustryAttributes)
	results := make([]match.Result, 0, len(artistList)*len(brands))
	for _, artist := range artistList {
		for _, brand := range brands {
			results = append(results, match.Result{
				Artist: artist,
				Brand:  brand,
				Score:  matcher.ScorePair(artist, brand),
			})
		}
	}
	match.Finalize(results)
	summary := match.Summarize(results)

	a.printMatchSummary(results, summary)

	a.section("csv export", func() error {
		path := report.Timestamped(a.cfg.ExportDir, "artist_brand_matches", "csv")
		if err := report.WriteCSV(path, matchHeaders, matchStringRows(results)); err != nil {
			return err
		}
		log.Info("exported", "path", path)
		return nil
	})
	a.section("excel export", func() error {
		path := report.Timestamped(a.cfg.ExportDir, "artist_brand_matches", "xlsx")
		if err := report.WriteExcel(path, matchWorkbook(results, summary)); err != nil {
			return err
		}
		log.Info("exported", "path", path)
		return nil
	})
	return nil
}

// printMatchSummary renders the run statistics, tier distribution and
// each artist's best match.
func (a *App) printMatchSummary(results []match.Result, summary match.Summary) {
	fmt.Fprintln(a.out, report.Title("Artist-brand affinity"))
	fmt.Fprint(a.out, report.KeyValues([][2]string{
		{"Pairs scored", strconv.Itoa(summary.Total)},
		{"Mean score", fmt.Sprintf("%.2f", summary.Mean)},
		{"Std deviation", fmt.Sprintf("%.2f", summary.StdDev)},
		{"Range", fmt.Sprintf("%.2f - %.2f", summary.Min, summary.Max)},
	}))

	tierRows := make([][]string, 0, 4)
	for _, tier := range []match.Tier{
		match.TierExceptional, match.TierStrong, match.TierGood, match.TierFair,
	} {
		tierRows = append(tierRows, []string{
			string(tier), percent(summary.TierCount[tier], summary.Total),
		})
	}
	fmt.Fprintln(a.out, "\nTier distribution")
	fmt.Fprintln(a.out, report.Table([]string{"Tier", "Matches"}, tierRows))

	var topRows [][]string
	for _, r := range results {
		if r.Rank != 1 {
			continue
		}
		topRows = append(topRows, []string{
			r.Artist.Name,
			r.Brand.Name,
			fmt.Sprintf("%.2f", r.Score.Composite),
			string(r.Tier),
			fmt.Sprintf("%.2f - %.2f", r.Score.CILower, r.Score.CIUpper),
			fmt.Sprintf("%.3f", r.PValue),
		})
	}
	fmt.Fprintln(a.out, "\nBest match per artist")
	fmt.Fprintln(a.out, report.Table(
		[]string{"Artist", "Brand", "Score", "Tier", "95% CI", "p"}, topRows))
}

var matchHeaders = []string{
	"artist", "genre", "brand", "industries", "media_spend",
	"composite_score", "demographic_score", "attribute_score",
	"geographic_score", "attribute_matches", "ci_lower", "ci_upper",
	"rank", "tier", "z_score", "p_value",
}

// matchValues renders one result in matchHeaders order.
func matchValues(r match.Result) []any {
	return []any{
		r.Artist.Name, r.Artist.Genre, r.Brand.Name, r.Brand.Industries,
		r.Brand.MediaSpend,
		r.Score.Composite, r.Score.Demographic, r.Score.Attribute,
		r.Score.Geographic, r.Score.AttributeMatches,
		r.Score.CILower, r.Score.CIUpper,
		r.Rank, string(r.Tier), r.ZScore, r.PValue,
	}
}

// matchStringRows renders results for CSV export.
func matchStringRows(results []match.Result) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		values := matchValues(r)
		row := make([]string, len(values))
		for j, v := range values {
			switch value := v.(type) {
			case float64:
				row[j] = strconv.FormatFloat(value, 'f', 4, 64)
			case int:
				row[j] = strconv.Itoa(value)
			default:
				row[j] = fmt.Sprintf("%v", value)
			}
		}
		rows[i] = row
	}
	return rows
}

// matchWorkbook assembles the four-sheet Excel export.
func matchWorkbook(results []match.Result, summary match.Summary) []report.Sheet {
	all := make([][]any, len(results))
	var top50 [][]any
	for i, r := range results {
		all[i] = matchValues(r)
		if r.Rank <= 50 {
			top50 = append(top50, matchValues(r))
		}
	}

	stats := [][]any{
		{"pairs_scored", summary.Total},
		{"mean_score", summary.Mean},
		{"std_deviation", summary.StdDev},
		{"min_score", summary.Min},
		{"max_score", summary.Max},
	}
	for _, tier := range []match.Tier{
		match.TierExceptional, match.TierStrong, match.TierGood, match.TierFair,
	} {
		stats = append(stats, []any{"tier_" + string(tier), summary.TierCount[tier]})
	}

	dictionary := [][]any{
		{"composite_score", "Weighted affinity on a 0-100 scale"},
		{"demographic_score", "Age, gender, income and ethnicity blend, 0-100"},
		{"attribute_score", "Consumer attribute to brand industry affinity, 0-100"},
		{"geographic_score", "Regional targeting alignment, 0-100"},
		{"attribute_matches", "Count of artist attributes mapped to the brand's industries"},
		{"ci_lower / ci_upper", "95% confidence interval around the composite"},
		{"rank", "Position of the brand within the artist's matches, best first"},
		{"tier", "Exceptional / Strong / Good / Fair against the run distribution"},
		{"z_score", "Standard score of the composite within the run"},
		{"p_value", "Two-sided normal-approximation p-value"},
	}

	return []report.Sheet{
		{Name: "All_Matches", Headers: matchHeaders, Rows: all},
		{Name: "Top_50_Per_Artist", Headers: matchHeaders, Rows: top50},
		{Name: "Summary_Stats", Headers: []string{"metric", "value"}, Rows: stats},
		{Name: "Data_Dictionary", Headers: []string{"column", "description"}, Rows: dictionary},
	}
}
