// Package db provides the database component of the prospector tool.
//
// Production runs connect to the Salesforce-mirror Azure SQL database
// through the go-mssqldb driver; tests and local snapshot analysis use
// sqlite through modernc.org/sqlite. Each domain query is held in an
// sql file under the `sql` directory written in the portable subset of
// both dialects, so any file can be run directly against a snapshot on
// the sqlite command line.
//
// The use of external, runnable sql files as Go prepared statements is
// made possible through the parameterization scheme set out in
// parameterize.go. Queries without parameters are loaded verbatim with
// loadQuery.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"                 // helper library
	_ "github.com/microsoft/go-mssqldb"       // azure sql driver
	"github.com/microsoft/go-mssqldb/azuread" // azure ad token auth
	_ "modernc.org/sqlite"                    // pure go sqlite driver
)

// Driver names accepted by NewConnection.
const (
	DriverSQLServer = "sqlserver"
	DriverAzureSQL  = "azuresql"
	DriverSQLite    = "sqlite"
)

// SQLEmbeddedFS embeds the runnable sql files: the prepared statement
// sources and the local snapshot schema.
//
//go:embed sql
var SQLEmbeddedFS embed.FS

// parameterizedStmt describes an sql file parsed into an sqlx
// NamedStmt expecting the provided args.
type parameterizedStmt struct {
	sqlFile string
	args    []string
	*sqlx.NamedStmt
}

// verifyArgs determines if the number of arguments provided to a
// parameterizedStmt is as expected. This check could be more thorough.
func (p *parameterizedStmt) verifyArgs(args map[string]any) error {
	if got, want := len(args), len(p.args); got != want {
		return fmt.Errorf(
			"argument length to named statement from %q incorrect: got %d want %d",
			p.sqlFile,
			got,
			want,
		)
	}
	return nil
}

// DB provides a wrapper around the sql.DB connection for
// application-specific db operations.
type DB struct {
	*sqlx.DB
	driverName string
	sqlFS      fs.FS

	// Prepared statements.
	brandsStmt           *parameterizedStmt
	sponsorsStmt         *parameterizedStmt
	prospectContactsStmt *parameterizedStmt
	engagementStmt       *parameterizedStmt
}

var prepareNamedStatementsOnStartup bool = true

// NewConnection creates a new connection to the database named by
// driverName: DriverSQLServer with a go-mssqldb URL for production, or
// DriverSQLite with a file path for local snapshots and tests.
func NewConnection(driverName, dataSource string, sqlDir fs.FS) (*DB, error) {

	// openName is the registered driver to open; bindName is the sqlx
	// dialect used for placeholder rebinding. The azuread driver speaks
	// the sqlserver dialect.
	openName, bindName := driverName, driverName

	switch driverName {
	case DriverSQLServer:
	case DriverAzureSQL:
		openName, bindName = azuread.DriverName, DriverSQLServer
	case DriverSQLite:
		// for in-memory test databases, check the necessary cached
		// setting is used.
		if strings.Contains(dataSource, ":memory:") || strings.Contains(dataSource, "mode=memory") {
			if !strings.Contains(dataSource, "cache=shared") {
				return nil, fmt.Errorf("in-memory connection %q should contain 'cache=shared'", dataSource)
			}
		} else if !strings.Contains(dataSource, "?") {
			// default settings for file-based snapshot databases.
			dataSource = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", dataSource)
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", driverName)
	}

	dbDB, err := sql.Open(openName, dataSource)
	if err != nil {
		return nil, err
	}

	if err := dbDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %w", err)
	}

	// Wrap the standard library *sql.DB with sqlx.
	db := &DB{
		DB:         sqlx.NewDb(dbDB, bindName),
		driverName: bindName,
		sqlFS:      sqlDir,
	}

	// Normally prepared statements are run on startup, but need to be
	// deferred until after schema loading for testing.
	if prepareNamedStatementsOnStartup {
		err = db.prepareNamedStatements()
		if err != nil {
			return nil, fmt.Errorf("could not prepare named statements: %w", err)
		}
	}

	return db, nil
}

// prepareNamedStatements prepares all the named statements for this
// database connection.
func (db *DB) prepareNamedStatements() error {
	var err error

	db.brandsStmt, err = db.prepNamedStatement(db.sqlFS, "brands.sql")
	if err != nil {
		return fmt.Errorf("brands statement error: %w", err)
	}
	db.sponsorsStmt, err = db.prepNamedStatement(db.sqlFS, "sponsor_accounts.sql")
	if err != nil {
		return fmt.Errorf("sponsor accounts statement error: %w", err)
	}
	db.prospectContactsStmt, err = db.prepNamedStatement(db.sqlFS, "prospect_contacts.sql")
	if err != nil {
		return fmt.Errorf("prospect contacts statement error: %w", err)
	}
	db.engagementStmt, err = db.prepNamedStatement(db.sqlFS, "engagement_meetings.sql")
	if err != nil {
		return fmt.Errorf("engagement meetings statement error: %w", err)
	}

	return nil
}

// prepNamedStatement prepares one parameterized SQL query file.
func (db *DB) prepNamedStatement(fileFS fs.FS, filePath string) (*parameterizedStmt, error) {
	query, err := ParameterizeFile(fileFS, filePath)
	if err != nil {
		return nil, fmt.Errorf("could not parameterize %q: %w", filePath, err)
	}

	pQuery, err := db.PrepareNamed(string(query.Body))
	if err != nil {
		return nil, fmt.Errorf("could not prepare statement %q: %w", filePath, err)
	}
	return &parameterizedStmt{
		filePath,
		query.Parameters,
		pQuery,
	}, nil
}

// loadQuery reads an unparameterized sql file.
func (db *DB) loadQuery(filePath string) (string, error) {
	b, err := fs.ReadFile(db.sqlFS, filePath)
	if err != nil {
		return "", fmt.Errorf("could not read query file %q: %w", filePath, err)
	}
	return string(b), nil
}

// InitSchema creates the snapshot tables if they don't already exist.
// The schema file can be run idempotently. It is only meaningful for
// the sqlite driver; the production database is read-only.
func (db *DB) InitSchema(fileFS fs.FS, filePath string) error {

	schema, err := fs.ReadFile(fileFS, filePath)
	if err != nil {
		return fmt.Errorf("could not read schema file at %q: %w", filePath, err)
	}

	_, err = db.ExecContext(context.Background(), string(schema))
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// logQuery is for helping debug SQL issues.
func logQuery(name string, stmt *parameterizedStmt, args map[string]any, err error) {
	log.Debug("sql", "query", name, "file", stmt.sqlFile, "args", args, "err", err)
}
