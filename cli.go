package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Applicator defines the interface for the analysis commands.
// This allows the CLI to be tested independently of the database-backed
// app implementation.
type Applicator interface {
	TestConnection(ctx context.Context) error
	ListTables(ctx context.Context) error
	DescribeTable(ctx context.Context, table string) error
	SampleData(ctx context.Context, table string, rows int) error
	AnalyzeProspects(ctx context.Context) error
	FindMusicSponsors(ctx context.Context) error
	MatchArtists(ctx context.Context, artistsFile string, minSpend float64) error
	Lookalike(ctx context.Context) error
	ScoreProspects(ctx context.Context) error
	Engagement(ctx context.Context) error
}

// AppBuilder constructs the Applicator after the global flags have been
// parsed. Each command builds the app, which loads the configuration
// and connects to the database, before running its analysis.
type AppBuilder func(ctx context.Context, c *cli.Command) (Applicator, error)

// BuildCLI creates the full CLI command structure for the application.
// It injects the app construction (the AppBuilder) into the command
// actions.
func BuildCLI(build AppBuilder) *cli.Command {
	// Flags shared by every command via the root command.
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "prospector.yaml",
		Usage:   "path to the analysis configuration file",
	}
	snapshotFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "path to a local sqlite snapshot instead of the Azure SQL mirror",
	}
	sqlDirFlag := &cli.StringFlag{
		Name:  "sql-dir",
		Usage: "load the SQL queries from a directory instead of the embedded copies",
	}
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable debug logging, including executed queries",
	}

	tableFlag := &cli.StringFlag{
		Name:     "table",
		Aliases:  []string{"t"},
		Usage:    "name of the database table",
		Required: true,
	}

	testConnectionCmd := &cli.Command{
		Name:  "test-connection",
		Usage: "Check database connectivity",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.TestConnection(ctx)
		},
	}

	listTablesCmd := &cli.Command{
		Name:    "list-tables",
		Usage:   "List the user tables with their row counts",
		Aliases: []string{"lt"},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.ListTables(ctx)
		},
	}

	describeTableCmd := &cli.Command{
		Name:    "describe-table",
		Usage:   "Show the column definitions of a table",
		Aliases: []string{"dt"},
		Flags:   []cli.Flag{tableFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.DescribeTable(ctx, c.String("table"))
		},
	}

	sampleDataCmd := &cli.Command{
		Name:    "sample-data",
		Usage:   "Show the first rows of a table",
		Aliases: []string{"sd"},
		Flags: []cli.Flag{
			tableFlag,
			&cli.IntFlag{
				Name:    "rows",
				Aliases: []string{"n"},
				Value:   5,
				Usage:   "number of rows to sample",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.SampleData(ctx, c.String("table"), c.Int("rows"))
		},
	}

	analyzeProspectsCmd := &cli.Command{
		Name:  "analyze-prospects",
		Usage: "Report contact and account data-quality coverage",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.AnalyzeProspects(ctx)
		},
	}

	findSponsorsCmd := &cli.Command{
		Name:  "find-music-sponsors",
		Usage: "List accounts in sponsor-relevant industries by revenue",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.FindMusicSponsors(ctx)
		},
	}

	matchArtistsCmd := &cli.Command{
		Name:    "match-artists",
		Usage:   "Score artist-brand affinity and export the rankings",
		Aliases: []string{"ma"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "artists",
				Aliases: []string{"a"},
				Usage:   "path to the artists spreadsheet (defaults to the configured file)",
			},
			&cli.FloatFlag{
				Name:  "min-spend",
				Usage: "media spend floor for the brand pool (defaults to the configured floor)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.MatchArtists(ctx, c.String("artists"), c.Float("min-spend"))
		},
	}

	lookalikeCmd := &cli.Command{
		Name:  "lookalike",
		Usage: "Cluster customers into archetypes and score prospect accounts",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.Lookalike(ctx)
		},
	}

	scoreProspectsCmd := &cli.Command{
		Name:    "score-prospects",
		Usage:   "Score every emailable external contact for outreach priority",
		Aliases: []string{"sp"},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.ScoreProspects(ctx)
		},
	}

	engagementCmd := &cli.Command{
		Name:  "engagement",
		Usage: "Analyze the seniority mix of New Business meetings",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := build(ctx, c)
			if err != nil {
				return err
			}
			return app.Engagement(ctx)
		},
	}

	// Assemble the root command.
	rootCmd := &cli.Command{
		Name:  "prospector",
		Usage: "Brand prospecting analytics over the Salesforce mirror",
		Flags: []cli.Flag{configFlag, snapshotFlag, sqlDirFlag, verboseFlag},
		Commands: []*cli.Command{
			testConnectionCmd, listTablesCmd, describeTableCmd, sampleDataCmd,
			analyzeProspectsCmd, findSponsorsCmd,
			matchArtistsCmd, lookalikeCmd, scoreProspectsCmd, engagementCmd,
		},
	}

	return rootCmd
}
