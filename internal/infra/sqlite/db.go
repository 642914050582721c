// Package sqlite provides SQLite-based persistent storage for taskomat.
// Uses WAL mode for concurrent reads and crash-safe writes. The only state
// kept here is the submission history; the pipeline itself is stateless.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/history.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS command_batches (
			id          TEXT PRIMARY KEY,
			command     TEXT NOT NULL,
			received_at INTEGER NOT NULL,
			intents     INTEGER NOT NULL,
			succeeded   INTEGER NOT NULL,
			failed      INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS batch_results (
			id           TEXT PRIMARY KEY,
			batch_id     TEXT NOT NULL REFERENCES command_batches(id) ON DELETE CASCADE,
			position     INTEGER NOT NULL,
			status       TEXT NOT NULL,
			content      TEXT NOT NULL,
			priority     INTEGER NOT NULL DEFAULT 1,
			project      TEXT NOT NULL DEFAULT '',
			due          TEXT NOT NULL DEFAULT '',
			labels       TEXT NOT NULL DEFAULT '',
			external_ref TEXT NOT NULL DEFAULT '',
			diagnostic   TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batches_received ON command_batches(received_at)`,
		`CREATE INDEX IF NOT EXISTS idx_results_batch ON batch_results(batch_id, position)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
