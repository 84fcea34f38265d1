// Package storage persists SDE names, ingested fits and saved fit summaries
// in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when deleting something that does not exist.
var ErrNotFound = errors.New("not found")

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			lower TEXT NOT NULL,
			category INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			lower TEXT NOT NULL,
			group_id INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_types_group ON types(group_id)`,
		`CREATE TABLE IF NOT EXISTS type_slots (
			type_id INTEGER PRIMARY KEY,
			slot TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fits (
			killmail INTEGER PRIMARY KEY,
			ship INTEGER NOT NULL,
			cost INTEGER NOT NULL DEFAULT 0,
			items TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS fit_items (
			killmail INTEGER NOT NULL REFERENCES fits(killmail) ON DELETE CASCADE,
			type_id INTEGER NOT NULL,
			PRIMARY KEY (killmail, type_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fit_items_type ON fit_items(type_id)`,
		`CREATE TABLE IF NOT EXISTS saved_fits (
			id TEXT PRIMARY KEY,
			key TEXT UNIQUE NOT NULL,
			summary TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// placeholders returns "?, ?, ..." for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func intArgs(ids []int) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
