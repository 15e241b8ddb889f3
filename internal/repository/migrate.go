package repository

import (
	"context"
	"fmt"
	"log/slog"
)

var tableDDL = []struct {
	name string
	ddl  string
}{
	{"software", `CREATE TABLE IF NOT EXISTS software (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(200) NOT NULL,
		slug VARCHAR(200),
		category VARCHAR(100),
		description TEXT,
		price_one_time INTEGER,
		price_yearly INTEGER,
		is_free BOOLEAN DEFAULT 0,
		is_active BOOLEAN DEFAULT 1,
		download_url TEXT,
		payment_link_onetime TEXT,
		payment_link_yearly TEXT,
		image TEXT,
		sort_order INTEGER DEFAULT 0,
		created_at TEXT,
		updated_at TEXT
	)`},
	{"release_notes", `CREATE TABLE IF NOT EXISTS release_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(250) NOT NULL,
		version VARCHAR(50),
		software_id INTEGER,
		release_date TEXT,
		content TEXT,
		is_published BOOLEAN DEFAULT 1,
		created_at TEXT,
		updated_at TEXT
	)`},
	{"known_issues", `CREATE TABLE IF NOT EXISTS known_issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(250) NOT NULL,
		status VARCHAR(50) DEFAULT 'Open',
		content TEXT,
		sort_order INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1,
		created_at TEXT,
		updated_at TEXT
	)`},
	{"clients", `CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(200) NOT NULL,
		industry VARCHAR(120),
		city VARCHAR(120),
		website VARCHAR(250),
		image TEXT,
		sort_order INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT 1,
		created_at TEXT,
		updated_at TEXT
	)`},
	{"admin_sessions", `CREATE TABLE IF NOT EXISTS admin_sessions (
		token TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`},
}

// addedColumns lists columns introduced after a table's first release.
// Each is added when missing from an existing table.
var addedColumns = []struct {
	table, column, ddl string
}{
	{"software", "image", "ALTER TABLE software ADD COLUMN image TEXT"},
}

// Bootstrap creates missing tables and adds missing columns. It is additive
// only and safe to run on every startup.
func Bootstrap(ctx context.Context, s *Store) error {
	for _, t := range tableDDL {
		existed, err := tableExists(ctx, s, t.name)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		if !existed {
			slog.Info("migration applied", "table", t.name, "change", "create table")
		}
	}

	applied := 0
	for _, c := range addedColumns {
		cols, err := TableColumns(ctx, s, c.table)
		if err != nil {
			return err
		}
		if contains(cols, c.column) {
			continue
		}
		if _, err := s.db.ExecContext(ctx, c.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
		applied++
		slog.Info("migration applied", "table", c.table, "change", "add column "+c.column)
	}
	if applied == 0 {
		slog.Debug("schema up to date", "path", s.path)
	}
	return nil
}

// TableColumns returns the column names of table in declaration order.
func TableColumns(ctx context.Context, s *Store, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// Tables returns the names of the tables Bootstrap manages.
func Tables() []string {
	names := make([]string, 0, len(tableDDL))
	for _, t := range tableDDL {
		names = append(names, t.name)
	}
	return names
}

func tableExists(ctx context.Context, s *Store, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return n > 0, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
