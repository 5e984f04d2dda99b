package db

// explore.go provides the schema exploration calls behind the
// test-connection, list-tables, describe-table and sample-data
// commands. These queries are necessarily dialect-specific (catalog
// views on SQL Server, sqlite_master and PRAGMA on sqlite) so they are
// built here rather than held in sql files.

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"
)

// regexpIdent is the set of table names accepted for interpolation
// into exploration queries. Identifiers cannot be bound as statement
// parameters, hence the allow-list.
var regexpIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkIdent guards against SQL injection through table name
// arguments.
func checkIdent(name string) error {
	if !regexpIdent.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// TestConnection performs a SELECT 1 round trip.
func (db *DB) TestConnection(ctx context.Context) error {
	var one int
	if err := db.QueryRowxContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	if one != 1 {
		return fmt.Errorf("connection test returned %d", one)
	}
	return nil
}

// Table describes one user table and its row count.
type Table struct {
	Name     string
	RowCount int64
}

// ListTables returns the user tables with row counts, ordered by name.
func (db *DB) ListTables(ctx context.Context) ([]Table, error) {
	var listSQL string
	switch db.driverName {
	case DriverSQLite:
		listSQL = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	default:
		listSQL = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
	}

	var names []string
	if err := db.SelectContext(ctx, &names, listSQL); err != nil {
		return nil, fmt.Errorf("table listing error: %w", err)
	}

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		count, err := db.RowCount(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name, RowCount: count})
	}
	return tables, nil
}

// RowCount counts the rows of the named table.
func (db *DB) RowCount(ctx context.Context, table string) (int64, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := db.QueryRowxContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("row count error for %q: %w", table, err)
	}
	return count, nil
}

// Column describes one column of a table. MaxLength is nil where the
// type carries no length (or, on sqlite, always).
type Column struct {
	Name      string
	DataType  string
	MaxLength *int64
	Nullable  bool
}

// DescribeTable returns the column definitions of the named table in
// ordinal order.
func (db *DB) DescribeTable(ctx context.Context, table string) ([]Column, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if db.driverName == DriverSQLite {
		return db.describeTableSQLite(ctx, table)
	}

	var rows []struct {
		Name      string        `db:"COLUMN_NAME"`
		DataType  string        `db:"DATA_TYPE"`
		MaxLength sql.NullInt64 `db:"CHARACTER_MAXIMUM_LENGTH"`
		Nullable  string        `db:"IS_NULLABLE"`
	}
	query := db.Rebind(`SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = ? ORDER BY ORDINAL_POSITION`)
	if err := db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, fmt.Errorf("describe error for %q: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}

	columns := make([]Column, len(rows))
	for i, r := range rows {
		columns[i] = Column{
			Name:     r.Name,
			DataType: r.DataType,
			Nullable: r.Nullable == "YES",
		}
		if r.MaxLength.Valid {
			v := r.MaxLength.Int64
			columns[i].MaxLength = &v
		}
	}
	return columns, nil
}

// describeTableSQLite reads column definitions from PRAGMA table_info.
func (db *DB) describeTableSQLite(ctx context.Context, table string) ([]Column, error) {
	var rows []struct {
		CID      int     `db:"cid"`
		Name     string  `db:"name"`
		DataType string  `db:"type"`
		NotNull  int     `db:"notnull"`
		Default  *string `db:"dflt_value"`
		PK       int     `db:"pk"`
	}
	query := fmt.Sprintf("PRAGMA table_info(%s)", table)
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("describe error for %q: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}

	columns := make([]Column, len(rows))
	for i, r := range rows {
		columns[i] = Column{
			Name:     r.Name,
			DataType: r.DataType,
			Nullable: r.NotNull == 0,
		}
	}
	return columns, nil
}

// Sample holds the first rows of a table with values rendered as
// strings for direct display.
type Sample struct {
	Columns []string
	Rows    [][]string
}

// SampleData fetches the first n rows of the named table.
func (db *DB) SampleData(ctx context.Context, table string, n int) (*Sample, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("sample size %d must be positive", n)
	}

	var query string
	switch db.driverName {
	case DriverSQLite:
		query = fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, n)
	default:
		query = fmt.Sprintf("SELECT TOP %d * FROM %s", n, table)
	}

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sample query error for %q: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	sample := &Sample{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("sample scan error for %q: %w", table, err)
		}
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = renderValue(v)
		}
		sample.Rows = append(sample.Rows, rendered)
	}
	return sample, rows.Err()
}

// renderValue formats a scanned value for console display.
func renderValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(value)
	case time.Time:
		return value.Format("2006-01-02 15:04:05")
	case float64:
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
