package app

// prospects.go backs the score-prospects command: every emailable
// contact scored 0-100 for outreach priority.

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/maxlive/prospector/classify"
	"github.com/maxlive/prospector/db"
	"github.com/maxlive/prospector/prospect"
	"github.com/maxlive/prospector/report"
)

// scoredContact pairs a contact with its score breakdown.
type scoredContact struct {
	contact   prospect.Contact
	breakdown prospect.Breakdown
	total     int
}

// ScoreProspects scores every emailable external contact and prints
// the distribution, tier, industry and account-size breakdowns with
// the top 25 contacts, then exports the full list to CSV.
func (a *App) ScoreProspects(ctx context.Context) error {
	domainPattern := "%" + a.cfg.InternalEmailDomain + "%"
	rows, err := a.db.GetProspectContacts(ctx, domainPattern)
	if err != nil {
		return fmt.Errorf("prospect contact load error: %w", err)
	}

	scored := make([]scoredContact, 0, len(rows))
	for _, row := range rows {
		if a.excluded(row.AccountName) {
			continue
		}
		c := toContact(row)
		b := prospect.ScoreContact(c)
		scored = append(scored, scoredContact{contact: c, breakdown: b, total: b.Total()})
	}
	if len(scored) == 0 {
		return fmt.Errorf("no scoreable contacts found")
	}
	log.Info("scored prospects", "contacts", len(scored))

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].total > scored[j].total
	})

	a.printProspectDistribution(scored)
	a.printProspectBreakdowns(scored)
	a.printTopContacts(scored)

	a.section("csv export", func() error {
		path := report.Timestamped(a.cfg.ExportDir, "prospect_scores", "csv")
		if err := report.WriteCSV(path, prospectHeaders, prospectRows(scored)); err != nil {
			return err
		}
		log.Info("exported", "path", path)
		return nil
	})
	return nil
}

// toContact converts a database row to the scorer's contact record.
func toContact(row db.ProspectContact) prospect.Contact {
	return prospect.Contact{
		ID:                  row.ID,
		Name:                row.Name,
		Title:               row.Title,
		Email:               row.Email,
		AccountName:         row.AccountName,
		BrandCount:          row.BrandCount,
		AvgMediaSpend:       row.AvgMediaSpend,
		MaxMediaSpend:       row.MaxMediaSpend,
		BeverageBrands:      row.BeverageBrands,
		EntertainmentBrands: row.EntertainmentBrands,
		AutomotiveBrands:    row.AutomotiveBrands,
		FoodBrands:          row.FoodBrands,
		TotalMeetings:       row.TotalMeetings,
		PersonalMeetings:    row.PersonalMeetings,
	}
}

func (a *App) printProspectDistribution(scored []scoredContact) {
	totals := make([]float64, len(scored))
	minScore, maxScore := math.Inf(1), math.Inf(-1)
	for i, s := range scored {
		totals[i] = float64(s.total)
		minScore = math.Min(minScore, totals[i])
		maxScore = math.Max(maxScore, totals[i])
	}
	sd := stat.StdDev(totals, nil)
	if math.IsNaN(sd) {
		sd = 0
	}

	fmt.Fprintln(a.out, report.Title("Prospect scoring"))
	fmt.Fprint(a.out, report.KeyValues([][2]string{
		{"Contacts scored", strconv.Itoa(len(scored))},
		{"Mean score", fmt.Sprintf("%.1f", stat.Mean(totals, nil))},
		{"Std deviation", fmt.Sprintf("%.1f", sd)},
		{"Range", fmt.Sprintf("%.0f - %.0f", minScore, maxScore)},
	}))
}

func (a *App) printProspectBreakdowns(scored []scoredContact) {
	tiers := map[string]int{}
	industries := map[string]int{}
	sizes := map[string]int{}
	for _, s := range scored {
		tiers[prospect.PriorityTier(s.total)]++
		c := s.contact
		industries[classify.PrimaryIndustry(
			c.BeverageBrands, c.EntertainmentBrands, c.AutomotiveBrands, c.FoodBrands)]++
		sizes[classify.AccountSizeTier(c.AvgMediaSpend)]++
	}

	tierRows := [][]string{}
	for _, tier := range []string{"VERY HIGH", "HIGH", "MEDIUM", "LOW", "VERY LOW"} {
		tierRows = append(tierRows, []string{tier, percent(tiers[tier], len(scored))})
	}
	fmt.Fprintln(a.out, "\nPriority tiers")
	fmt.Fprintln(a.out, report.Table([]string{"Tier", "Contacts"}, tierRows))

	industryRows := [][]string{}
	for _, industry := range []string{"Beverage", "Entertainment", "Automotive", "Food & CPG", "Other"} {
		if industries[industry] == 0 {
			continue
		}
		industryRows = append(industryRows, []string{industry, percent(industries[industry], len(scored))})
	}
	fmt.Fprintln(a.out, "\nIndustry focus")
	fmt.Fprintln(a.out, report.Table([]string{"Industry", "Contacts"}, industryRows))

	sizeRows := [][]string{}
	for _, size := range []string{
		"Enterprise ($5M+)", "Large ($1M-$5M)", "Medium ($500K-$1M)",
		"Small ($100K-$500K)", "Minimal (<$100K)",
	} {
		if sizes[size] == 0 {
			continue
		}
		sizeRows = append(sizeRows, []string{size, percent(sizes[size], len(scored))})
	}
	fmt.Fprintln(a.out, "\nAccount size")
	fmt.Fprintln(a.out, report.Table([]string{"Size tier", "Contacts"}, sizeRows))
}

// topContactCount bounds the console listing.
const topContactCount = 25

func (a *App) printTopContacts(scored []scoredContact) {
	rows := make([][]string, 0, topContactCount)
	for i, s := range scored {
		if i == topContactCount {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.contact.Name,
			s.contact.Title,
			s.contact.AccountName,
			strconv.Itoa(s.total),
			prospect.PriorityTier(s.total),
		})
	}
	fmt.Fprintln(a.out, "\n"+report.Title("Top prospects"))
	fmt.Fprintln(a.out, report.Table(
		[]string{"#", "Name", "Title", "Account", "Score", "Priority"}, rows))
}

var prospectHeaders = []string{
	"contact_id", "name", "title", "email", "account",
	"total_score", "priority", "title_score", "spend_score",
	"portfolio_score", "industry_score", "activity_score",
	"contact_tier", "primary_industry", "account_size",
}

func prospectRows(scored []scoredContact) [][]string {
	rows := make([][]string, len(scored))
	for i, s := range scored {
		c := s.contact
		b := s.breakdown
		rows[i] = []string{
			c.ID, c.Name, c.Title, c.Email, c.AccountName,
			strconv.Itoa(s.total),
			prospect.PriorityTier(s.total),
			strconv.Itoa(b.Title),
			strconv.Itoa(b.Spend),
			strconv.Itoa(b.Portfolio),
			strconv.Itoa(b.Industry),
			strconv.Itoa(b.Activity),
			classify.ContactTier(c.Title),
			classify.PrimaryIndustry(c.BeverageBrands, c.EntertainmentBrands, c.AutomotiveBrands, c.FoodBrands),
			classify.AccountSizeTier(c.AvgMediaSpend),
		}
	}
	return rows
}
