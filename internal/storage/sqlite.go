// Package storage persists derived tables to a local SQLite database so
// dashboard tools can query the pipeline output without re-parsing CSV.
package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"f1pipeline/internal/table"
)

// DB wraps a SQLite database used as a sink for derived tables.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// identRe restricts table and column identifiers to what the report headers
// use. Anything else is rejected rather than quoted.
var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SaveTable replaces the named table's contents with t. The table is created
// on first use with one TEXT column per header field; prior rows are deleted
// so a rerun leaves exactly one copy of the data.
func (d *DB) SaveTable(name string, t *table.Table) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	if len(t.Header) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}
	for _, col := range t.Header {
		if !identRe.MatchString(col) {
			return fmt.Errorf("invalid column name %q in table %s", col, name)
		}
	}

	create := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s TEXT)",
		name, strings.Join(t.Header, " TEXT, "),
	)
	if _, err := d.db.Exec(create); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM " + name); err != nil {
		return fmt.Errorf("clear table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Header)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(t.Header, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("prepare insert for %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// CountRows returns the number of rows currently stored for name.
func (d *DB) CountRows(name string) (int, error) {
	if !identRe.MatchString(name) {
		return 0, fmt.Errorf("invalid table name %q", name)
	}
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM " + name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}
