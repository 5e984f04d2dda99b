package app

// engagement.go backs the engagement command: who the team actually
// meets, by seniority, split by customer status and first-touch
// meetings.

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/maxlive/prospector/classify"
	"github.com/maxlive/prospector/report"
)

// Engagement analyzes the seniority mix of New Business meetings since
// the configured cutoff.
func (a *App) Engagement(ctx context.Context) error {
	meetings, err := a.db.GetEngagementMeetings(ctx, a.cfg.EngagementSince)
	if err != nil {
		return fmt.Errorf("engagement meeting load error: %w", err)
	}
	log.Info("engagement meetings", "since", a.cfg.EngagementSince.Format("2006-01-02"), "rows", len(meetings))

	all := map[classify.SeniorityLevel]int{}
	customer := map[classify.SeniorityLevel]int{}
	nonCustomer := map[classify.SeniorityLevel]int{}
	first := map[classify.SeniorityLevel]int{}
	customerTotal, firstTotal := 0, 0

	for _, m := range meetings {
		level := classify.Seniority(m.Title)
		all[level]++
		if m.Customer() {
			customer[level]++
			customerTotal++
		} else {
			nonCustomer[level]++
		}
		if m.MeetingSequence == 1 {
			first[level]++
			firstTotal++
		}
	}
	total := len(meetings)
	prospectTotal := total - customerTotal

	fmt.Fprintln(a.out, report.Title(fmt.Sprintf(
		"Executive engagement since %s", a.cfg.EngagementSince.Format("2006-01-02"))))
	fmt.Fprint(a.out, report.KeyValues([][2]string{
		{"New Business meetings", fmt.Sprintf("%d", total)},
		{"At customer accounts", percent(customerTotal, total)},
		{"At prospect accounts", percent(prospectTotal, total)},
		{"Executive meetings", percent(executiveCount(all), total)},
	}))

	rows := make([][]string, 0, len(classify.Levels))
	for _, level := range classify.Levels {
		if all[level] == 0 {
			continue
		}
		rows = append(rows, []string{
			string(level),
			percent(all[level], total),
			percent(customer[level], customerTotal),
			percent(nonCustomer[level], prospectTotal),
			percent(first[level], firstTotal),
		})
	}
	fmt.Fprintln(a.out, "\nSeniority mix")
	fmt.Fprintln(a.out, report.Table(
		[]string{"Seniority", "All meetings", "Customers", "Prospects", "First meetings"},
		rows))
	return nil
}

// executiveCount sums the meetings held with VP-or-above contacts.
func executiveCount(byLevel map[classify.SeniorityLevel]int) int {
	count := 0
	for level, n := range byLevel {
		if level.Score() >= classify.VP.Score() {
			count += n
		}
	}
	return count
}
