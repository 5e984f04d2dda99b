// Package config holds the two configuration surfaces of the
// prospector tool: analysis settings loaded from a YAML file (score
// weights, attribute maps, exclusions) and connection credentials
// loaded from the environment. The split mirrors how the tool is used:
// analysts tune the YAML while operators own the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/maxlive/prospector/lookalike"
	"github.com/maxlive/prospector/match"
)

// Config represents the analysis configuration.
type Config struct {
	// ExportDir is where CSV, Excel and text reports are written.
	ExportDir string `yaml:"export_dir"`

	// MinMediaSpend filters brands for artist matching.
	MinMediaSpend float64 `yaml:"min_media_spend"`

	// ExcludedAccounts are SQL LIKE patterns for accounts removed from
	// every analysis: known bias accounts and the internal org.
	ExcludedAccounts []string `yaml:"excluded_accounts"`

	// InternalEmailDomain marks contacts belonging to the internal org,
	// excluded from prospect scoring.
	InternalEmailDomain string `yaml:"internal_email_domain"`

	// EngagementSinceStr bounds the executive engagement analysis;
	// meetings before this date are ignored.
	EngagementSinceStr string `yaml:"engagement_since"`

	// ArtistsFile is the spreadsheet of artists to match.
	ArtistsFile string `yaml:"artists_file"`

	// Weights are the affinity scorer component weights. These are
	// hand-tuned values without a validated derivation, which is why
	// they live in configuration rather than code.
	Weights match.Weights `yaml:"weights"`

	// IndustryAttributes maps consumer attribute keywords to brand
	// industry keywords for the affinity scorer.
	IndustryAttributes match.IndustryAttributeMap `yaml:"industry_attributes"`

	// LookalikeTiers are the lookalike score cut points.
	LookalikeTiers lookalike.TierBins `yaml:"lookalike_tiers"`

	EngagementSince time.Time // Parsed from EngagementSinceStr
}

// Default returns the compiled-in configuration, matching the
// historical analysis behaviour.
func Default() *Config {
	return &Config{
		ExportDir:           ".",
		MinMediaSpend:       5_000_000,
		ExcludedAccounts:    []string{"%Ford%", "Music Audience Exchange"},
		InternalEmailDomain: "musicaudienceexchange",
		EngagementSinceStr:  "2019-01-01",
		ArtistsFile:         "ArtistsToMatch.xlsx",
		Weights:             match.DefaultWeights(),
		IndustryAttributes:  match.DefaultIndustryAttributeMap(),
		LookalikeTiers:      lookalike.DefaultTierBins(),
		EngagementSince:     time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Load loads and validates the YAML configuration at filePath over the
// defaults. A missing file is an error; callers wanting the defaults
// use Default directly.
func Load(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", filePath)
	}

	configFile, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	err = yaml.Unmarshal(configFile, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse YAML config file: %w", err)
	}

	if err := validateAndPrepare(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateAndPrepare checks for required fields and sets up derived
// values.
func validateAndPrepare(c *Config) error {
	if c.ExportDir == "" {
		return errors.New("export_dir is missing")
	}
	if c.MinMediaSpend < 0 {
		return errors.New("min_media_spend may not be negative")
	}
	if c.EngagementSinceStr == "" {
		return errors.New("engagement_since is missing")
	}
	parsedDate, err := time.Parse("2006-01-02", c.EngagementSinceStr)
	if err != nil {
		return fmt.Errorf("invalid engagement_since format: %w", err)
	}
	c.EngagementSince = parsedDate

	w := c.Weights
	total := w.Age + w.Gender + w.Income + w.Ethnicity + w.Attributes + w.Geography
	if total <= 0 {
		return errors.New("weights must sum to a positive value")
	}
	if total > 1.000001 {
		return fmt.Errorf("weights sum to %.3f, may not exceed 1", total)
	}

	bins := c.LookalikeTiers
	if !(bins.Medium < bins.High && bins.High < bins.VeryHigh) {
		return errors.New("lookalike_tiers must be strictly increasing")
	}

	return nil
}

// AzureEnv holds the Azure SQL connection settings, read from the
// AZURE_DB_* environment variables.
type AzureEnv struct {
	Server     string
	Database   string
	Username   string
	Password   string
	UseAzureAD bool
	Timeout    time.Duration
}

// GoogleCloudEnv holds the optional GCP settings (GCP_*). They are
// parsed for completeness; no current report uses them.
type GoogleCloudEnv struct {
	ProjectID       string
	BigQueryDataset string
	StorageBucket   string
	Location        string
}

// HubSpotEnv holds the optional HubSpot settings (HUBSPOT_*), likewise
// unused by the current reports.
type HubSpotEnv struct {
	AccessToken string
	APIBaseURL  string
}

// Env is the full environment-derived configuration.
type Env struct {
	Azure   AzureEnv
	GCP     GoogleCloudEnv
	HubSpot HubSpotEnv
}

// envOr returns the named environment variable or a fallback.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads connection settings from the environment. Validation
// is deferred to AzureEnv.Validate so commands that never connect (or
// run against a local snapshot) do not require credentials.
func LoadEnv() Env {
	timeout := 30 * time.Second
	if v := os.Getenv("AZURE_DB_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	useAD, _ := strconv.ParseBool(os.Getenv("AZURE_DB_USE_AZURE_AD"))
	return Env{
		Azure: AzureEnv{
			Server:     os.Getenv("AZURE_DB_SERVER"),
			Database:   os.Getenv("AZURE_DB_DATABASE"),
			Username:   os.Getenv("AZURE_DB_USERNAME"),
			Password:   os.Getenv("AZURE_DB_PASSWORD"),
			UseAzureAD: useAD,
			Timeout:    timeout,
		},
		GCP: GoogleCloudEnv{
			ProjectID:       os.Getenv("GCP_PROJECT_ID"),
			BigQueryDataset: envOr("GCP_BIGQUERY_DATASET", "maxlive_prospects"),
			StorageBucket:   envOr("GCP_STORAGE_BUCKET", "maxlive-data-pipeline"),
			Location:        envOr("GCP_LOCATION", "us-central1"),
		},
		HubSpot: HubSpotEnv{
			AccessToken: os.Getenv("HUBSPOT_ACCESS_TOKEN"),
			APIBaseURL:  envOr("HUBSPOT_API_BASE_URL", "https://api.hubapi.com"),
		},
	}
}

// Validate checks that the Azure connection settings are complete.
func (a AzureEnv) Validate() error {
	if a.Server == "" {
		return errors.New("AZURE_DB_SERVER is missing")
	}
	if a.Database == "" {
		return errors.New("AZURE_DB_DATABASE is missing")
	}
	if a.UseAzureAD {
		return nil
	}
	if a.Username == "" {
		return errors.New("AZURE_DB_USERNAME is missing")
	}
	if a.Password == "" {
		return errors.New("AZURE_DB_PASSWORD is missing")
	}
	return nil
}

// DSN builds the SQL Server connection URL for the go-mssqldb driver.
// Encryption is always on; Azure SQL refuses plaintext connections.
func (a AzureEnv) DSN() string {
	query := url.Values{}
	query.Set("database", a.Database)
	query.Set("encrypt", "true")
	query.Set("TrustServerCertificate", "false")
	query.Set("dial timeout", strconv.Itoa(int(a.Timeout.Seconds())))
	if a.UseAzureAD {
		query.Set("fedauth", "ActiveDirectoryDefault")
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     a.Server + ":1433",
		RawQuery: query.Encode(),
	}
	if !a.UseAzureAD {
		u.User = url.UserPassword(a.Username, a.Password)
	}
	return u.String()
}
