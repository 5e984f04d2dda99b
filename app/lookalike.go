package app

// lookalike.go backs the lookalike command: customer archetype
// clustering and cosine-similarity prospect scoring.

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/maxlive/prospector/db"
	"github.com/maxlive/prospector/lookalike"
	"github.com/maxlive/prospector/report"
)

// toProfile converts a database account profile to the lookalike
// feature profile.
func toProfile(p db.AccountProfile) lookalike.Profile {
	return lookalike.Profile{
		AccountID:            p.ID,
		AccountName:          p.Name,
		TotalRevenue:         p.TotalRevenue,
		DealCount:            p.DealCount,
		AvgDealSize:          p.AvgDealSize,
		BrandCount:           p.BrandCount,
		AvgBrandSpend:        p.AvgBrandSpend,
		MaxBrandSpend:        p.MaxBrandSpend,
		BeverageBrands:       p.BeverageBrands,
		EntertainmentBrands:  p.EntertainmentBrands,
		AutomotiveBrands:     p.AutomotiveBrands,
		FoodBrands:           p.FoodBrands,
		TotalContacts:        p.TotalContacts,
		ManagerContacts:      p.ManagerContacts,
		DirectorContacts:     p.DirectorContacts,
		VPContacts:           p.VPContacts,
		MarketingContacts:    p.MarketingContacts,
		BrandContacts:        p.BrandContacts,
		MediaContacts:        p.MediaContacts,
		TotalMeetings:        p.TotalMeetings,
		NewBusinessMeetings:  p.NewBusinessMeetings,
		ContactsWithMeetings: p.ContactsWithMeetings,
	}
}

// Lookalike clusters customers into archetypes and scores every
// non-customer account by similarity to the customer base.
func (a *App) Lookalike(ctx context.Context) error {
	customerRows, err := a.db.GetCustomerProfiles(ctx)
	if err != nil {
		return fmt.Errorf("customer profile load error: %w", err)
	}
	prospectRows, err := a.db.GetProspectProfiles(ctx)
	if err != nil {
		return fmt.Errorf("prospect profile load error: %w", err)
	}

	var customers []lookalike.Profile
	for _, row := range customerRows {
		if a.excluded(row.Name) {
			continue
		}
		customers = append(customers, toProfile(row))
	}
	var prospects []lookalike.Profile
	for _, row := range prospectRows {
		if a.excluded(row.Name) {
			continue
		}
		p := toProfile(row)
		// Prospects have no deal history; keep their vectors
		// comparable with customers.
		p.AvgDealSize = lookalike.PlaceholderDealSize
		prospects = append(prospects, p)
	}
	log.Info("lookalike inputs", "customers", len(customers), "prospects", len(prospects))

	model, err := lookalike.Fit(customers)
	if err != nil {
		return err
	}
	scored := model.ScoreProspects(prospects)
	bins := a.cfg.LookalikeTiers

	a.printArchetypes(model)
	a.printTopProspects(scored, bins)

	a.section("lookalike exports", func() error {
		return a.exportLookalike(model, scored, bins)
	})
	return nil
}

// printArchetypes renders each archetype with its member count and
// mean characteristics.
func (a *App) printArchetypes(model *lookalike.Model) {
	fmt.Fprintln(a.out, report.Title("Customer archetypes"))

	rows := make([][]string, 0, len(model.Archetypes))
	for _, arch := range model.Archetypes {
		var brands, spend, penetration float64
		for _, i := range arch.Members {
			c := model.Customers[i]
			brands += float64(c.BrandCount)
			spend += c.AvgBrandSpend
			penetration += c.MeetingPenetration()
		}
		if n := float64(len(arch.Members)); n > 0 {
			brands /= n
			spend /= n
			penetration /= n
		}
		rows = append(rows, []string{
			arch.Name,
			strconv.Itoa(len(arch.Members)),
			fmt.Sprintf("%.1f", brands),
			money(spend),
			fmt.Sprintf("%.1f", penetration),
		})
	}
	fmt.Fprintln(a.out, report.Table(
		[]string{"Archetype", "Customers", "Avg brands", "Avg brand spend", "Meetings/contact"},
		rows))
}

// topProspectCount bounds the console listing; the full ranking goes
// to the CSV exports.
const topProspectCount = 20

func (a *App) printTopProspects(scored []lookalike.ProspectScore, bins lookalike.TierBins) {
	rows := make([][]string, 0, topProspectCount)
	for i, s := range scored {
		if i == topProspectCount {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Profile.AccountName,
			strconv.Itoa(s.Score),
			bins.Tier(s.Score),
			s.BestArchetype,
		})
	}
	fmt.Fprintln(a.out, "\n"+report.Title("Top lookalike prospects"))
	fmt.Fprintln(a.out, report.Table(
		[]string{"#", "Account", "Score", "Priority", "Archetype"}, rows))
}

var lookalikeHeaders = []string{
	"account_id", "account_name", "score", "priority", "best_archetype",
	"archetype_score", "brand_count", "avg_brand_spend", "total_contacts",
	"total_meetings",
}

func lookalikeRow(s lookalike.ProspectScore, bins lookalike.TierBins) []string {
	return []string{
		s.Profile.AccountID,
		s.Profile.AccountName,
		strconv.Itoa(s.Score),
		bins.Tier(s.Score),
		s.BestArchetype,
		strconv.Itoa(s.ArchetypeScore),
		strconv.Itoa(s.Profile.BrandCount),
		strconv.FormatFloat(s.Profile.AvgBrandSpend, 'f', 0, 64),
		strconv.Itoa(s.Profile.TotalContacts),
		strconv.Itoa(s.Profile.TotalMeetings),
	}
}

// exportLookalike writes the all-prospects and high-priority CSVs, one
// CSV per archetype, and a text summary.
func (a *App) exportLookalike(model *lookalike.Model, scored []lookalike.ProspectScore, bins lookalike.TierBins) error {
	var all, high [][]string
	byArchetype := map[string][][]string{}
	tierCounts := map[string]int{}
	for _, s := range scored {
		row := lookalikeRow(s, bins)
		tier := bins.Tier(s.Score)
		tierCounts[tier]++
		all = append(all, row)
		if tier == "Very High" || tier == "High" {
			high = append(high, row)
		}
		byArchetype[s.BestArchetype] = append(byArchetype[s.BestArchetype], row)
	}

	path := report.Timestamped(a.cfg.ExportDir, "lookalike_prospects", "csv")
	if err := report.WriteCSV(path, lookalikeHeaders, all); err != nil {
		return err
	}
	log.Info("exported", "path", path)

	path = report.Timestamped(a.cfg.ExportDir, "lookalike_high_priority", "csv")
	if err := report.WriteCSV(path, lookalikeHeaders, high); err != nil {
		return err
	}
	log.Info("exported", "path", path)

	for name, rows := range byArchetype {
		stem := "lookalike_" + slug(name)
		path = report.Timestamped(a.cfg.ExportDir, stem, "csv")
		if err := report.WriteCSV(path, lookalikeHeaders, rows); err != nil {
			return err
		}
		log.Info("exported", "path", path)
	}

	var b strings.Builder
	b.WriteString("CUSTOMER LOOKALIKE SUMMARY\n\n")
	fmt.Fprintf(&b, "Customers clustered: %d\n", len(model.Customers))
	fmt.Fprintf(&b, "Prospects scored:    %d\n\n", len(scored))
	b.WriteString("Archetypes:\n")
	for _, arch := range model.Archetypes {
		fmt.Fprintf(&b, "  %-22s %d customers\n", arch.Name, len(arch.Members))
	}
	b.WriteString("\nProspect priorities:\n")
	for _, tier := range []string{"Very High", "High", "Medium", "Low"} {
		fmt.Fprintf(&b, "  %-10s %d\n", tier, tierCounts[tier])
	}
	path = report.Timestamped(a.cfg.ExportDir, "lookalike_summary", "txt")
	if err := report.WriteText(path, b.String()); err != nil {
		return err
	}
	log.Info("exported", "path", path)
	return nil
}

// slug lowercases a name for use in a filename.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
