// prospector is a set of analytics commands over a Salesforce-mirror
// database: artist-brand affinity scoring, customer lookalike
// clustering, prospect contact scoring, executive engagement analysis
// and a handful of database exploration helpers.
//
// The production database is the Azure SQL mirror, configured through
// AZURE_DB_* environment variables (a .env file is loaded when
// present). The --db flag points the same commands at a local sqlite
// snapshot instead, which is also how the test suite runs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/maxlive/prospector/app"
	"github.com/maxlive/prospector/config"
	"github.com/maxlive/prospector/db"
	"github.com/maxlive/prospector/internal/mounts"
)

const defaultConfigPath = "prospector.yaml"

// loadConfig reads the analysis configuration. A missing file is only
// an error when the user pointed at one explicitly; otherwise the
// defaults apply.
func loadConfig(filePath string) (*config.Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if filePath == defaultConfigPath {
			log.Debug("no configuration file found, using defaults", "path", filePath)
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file does not exist: %s", filePath)
	}
	return config.Load(filePath)
}

// resolveDatabase picks the driver and data source. A snapshot path
// selects the local sqlite driver; otherwise the Azure SQL mirror is
// used, with Azure AD federated auth when AZURE_DB_USE_AZURE_AD is set.
func resolveDatabase(snapshotPath string) (driverName, dataSource string, err error) {
	if snapshotPath != "" {
		if _, err := os.Stat(snapshotPath); err != nil {
			return "", "", fmt.Errorf("sqlite snapshot error: %w", err)
		}
		return db.DriverSQLite, snapshotPath, nil
	}

	env := config.LoadEnv()
	if err := env.Azure.Validate(); err != nil {
		return "", "", err
	}
	driverName = db.DriverSQLServer
	if env.Azure.UseAzureAD {
		driverName = db.DriverAzureSQL
	}
	return driverName, env.Azure.DSN(), nil
}

// buildApp constructs the database-backed app once the global flags
// have been parsed. It satisfies the AppBuilder signature.
func buildApp(ctx context.Context, c *cli.Command) (Applicator, error) {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	driverName, dataSource, err := resolveDatabase(c.String("db"))
	if err != nil {
		return nil, err
	}

	sqlFS, err := mounts.NewFileMount("sql", db.SQLEmbeddedFS, c.String("sql-dir"))
	if err != nil {
		return nil, fmt.Errorf("could not mount sql fs: %w", err)
	}

	database, err := db.NewConnection(driverName, dataSource, sqlFS)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	log.Debug("connected", "driver", driverName)

	return app.New(cfg, database, os.Stdout), nil
}

func main() {
	// Developer convenience only; the environment wins over .env.
	_ = godotenv.Load()

	log.SetReportTimestamp(false)

	cmd := BuildCLI(buildApp)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
