package app

// explore.go backs the database exploration commands: the thin
// console wrappers around db's explore helpers plus the data-quality
// and sponsor-scan reports.

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/maxlive/prospector/report"
)

// TestConnection checks the database round trip and reports the
// outcome.
func (a *App) TestConnection(ctx context.Context) error {
	if err := a.db.TestConnection(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	fmt.Fprintln(a.out, "Database connection OK")
	return nil
}

// ListTables prints every user table with its row count.
func (a *App) ListTables(ctx context.Context) error {
	tables, err := a.db.ListTables(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{t.Name, strconv.FormatInt(t.RowCount, 10)}
	}
	fmt.Fprintln(a.out, report.Table([]string{"Table", "Rows"}, rows))
	return nil
}

// DescribeTable prints the column definitions of one table.
func (a *App) DescribeTable(ctx context.Context, table string) error {
	columns, err := a.db.DescribeTable(ctx, table)
	if err != nil {
		return err
	}

	rows := make([][]string, len(columns))
	for i, c := range columns {
		length := ""
		if c.MaxLength != nil {
			length = strconv.FormatInt(*c.MaxLength, 10)
		}
		nullable := "NO"
		if c.Nullable {
			nullable = "YES"
		}
		rows[i] = []string{c.Name, c.DataType, length, nullable}
	}
	fmt.Fprintln(a.out, report.Title(table))
	fmt.Fprintln(a.out, report.Table([]string{"Column", "Type", "Length", "Nullable"}, rows))
	return nil
}

// SampleData prints the first n rows of one table.
func (a *App) SampleData(ctx context.Context, table string, n int) error {
	sample, err := a.db.SampleData(ctx, table, n)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, report.Title(fmt.Sprintf("%s (first %d rows)", table, n)))
	fmt.Fprintln(a.out, report.Table(sample.Columns, sample.Rows))
	return nil
}

// AnalyzeProspects prints contact and account data-quality coverage.
func (a *App) AnalyzeProspects(ctx context.Context) error {
	fmt.Fprintln(a.out, report.Title("Prospect data quality"))

	a.section("contact quality", func() error {
		cq, err := a.db.GetContactQuality(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "\nContacts")
		fmt.Fprint(a.out, report.KeyValues([][2]string{
			{"Total", strconv.Itoa(cq.Total)},
			{"With email", percent(cq.WithEmail, cq.Total)},
			{"With phone", percent(cq.WithPhone, cq.Total)},
			{"With account", percent(cq.WithAccount, cq.Total)},
			{"With title", percent(cq.WithTitle, cq.Total)},
		}))
		return nil
	})

	a.section("account quality", func() error {
		aq, err := a.db.GetAccountQuality(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "\nAccounts")
		fmt.Fprint(a.out, report.KeyValues([][2]string{
			{"Total", strconv.Itoa(aq.Total)},
			{"With industry", percent(aq.WithIndustry, aq.Total)},
			{"With revenue", percent(aq.WithRevenue, aq.Total)},
			{"With employees", percent(aq.WithEmployees, aq.Total)},
			{"With billing state", percent(aq.WithState, aq.Total)},
		}))
		return nil
	})

	return nil
}

// sponsorMinEmployees is the size floor for the sponsor industry scan.
const sponsorMinEmployees = 100

// FindMusicSponsors prints accounts in sponsor-relevant industries
// ranked by revenue.
func (a *App) FindMusicSponsors(ctx context.Context) error {
	accounts, err := a.db.GetSponsorAccounts(ctx, sponsorMinEmployees)
	if err != nil {
		return err
	}
	log.Info("sponsor scan", "accounts", len(accounts))

	rows := make([][]string, 0, len(accounts))
	for _, acc := range accounts {
		if a.excluded(acc.Name) {
			continue
		}
		rows = append(rows, []string{
			acc.Name,
			acc.Industry,
			money(acc.Revenue),
			strconv.Itoa(acc.Employees),
			acc.BillingState,
		})
	}
	fmt.Fprintln(a.out, report.Title("Potential music sponsors"))
	fmt.Fprintln(a.out, report.Table(
		[]string{"Account", "Industry", "Revenue", "Employees", "State"}, rows))
	return nil
}
