package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store is the single shared SQLite handle. It is opened once at startup and
// passed to every repository constructor.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database file at path. The pool is capped at one
// connection: the engine serialises writers anyway and a single connection
// keeps per-connection pragmas in effect.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(0)")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	// WAL needs a writable directory for its side files; fall back silently to
	// the default rollback journal if it is refused.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		slog.Warn("journal_mode=WAL not applied", "path", path, "error", err)
	}
	return &Store{db: db, path: path}, nil
}

// Conn returns the underlying *sql.DB.
func (s *Store) Conn() *sql.DB { return s.db }

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the connection.
func (s *Store) Close() error { return s.db.Close() }

// PathOptions controls where the database file lives.
type PathOptions struct {
	// Explicit wins over everything else when non-empty.
	Explicit string
	// SiteDir holds assets/data/app.db, the bundled seed database.
	SiteDir string
	// RuntimeDir is a scratch location (normally /tmp) used when writable,
	// for hosts where the site directory is read-only.
	RuntimeDir string
}

const dbFileName = "app.db"

// SeedPath returns the location of the bundled seed database.
func (o PathOptions) SeedPath() string {
	return filepath.Join(o.SiteDir, "assets", "data", dbFileName)
}

// ResolvePath picks the database file. With no explicit path it prefers
// RuntimeDir/app.db when RuntimeDir is writable, copying the seed database
// there on first boot; otherwise it uses the seed location inside SiteDir.
func ResolvePath(o PathOptions) (string, error) {
	if o.Explicit != "" {
		return o.Explicit, nil
	}

	if o.RuntimeDir != "" && dirWritable(o.RuntimeDir) {
		target := filepath.Join(o.RuntimeDir, dbFileName)
		if _, err := SeedIfMissing(o.SeedPath(), target); err != nil {
			return "", err
		}
		return target, nil
	}

	dir := filepath.Dir(o.SeedPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("database directory %s is not writable: %w", dir, err)
	}
	return o.SeedPath(), nil
}

// SeedIfMissing copies seed to target when seed exists and target does not.
// It reports whether a copy happened.
func SeedIfMissing(seed, target string) (bool, error) {
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}
	src, err := os.Open(seed)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open seed database: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create database directory: %w", err)
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, fmt.Errorf("create database file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return false, fmt.Errorf("copy seed database: %w", err)
	}
	if err := dst.Close(); err != nil {
		return false, fmt.Errorf("copy seed database: %w", err)
	}
	slog.Info("seed database copied", "from", seed, "to", target)
	return true, nil
}

func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
