// Package sqlite implements the persistence repositories on SQLite via the
// CGO-free modernc.org driver. Identifiers are assigned here at insert time
// using an injected generator, and instants are stored as UTC epoch seconds.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Storage implements every persistence repository against one SQLite database.
type Storage struct {
	db          *sql.DB
	idGenerator func() string
	now         func() time.Time
}

// Option adjusts Storage construction.
type Option func(*Storage)

// WithIDGenerator overrides how new row identifiers are produced.
func WithIDGenerator(gen func() string) Option {
	return func(s *Storage) {
		if gen != nil {
			s.idGenerator = gen
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		if now != nil {
			s.now = now
		}
	}
}

// Open connects to the database at dsn. Callers must run Migrate before use.
func Open(dsn string, opts ...Option) (*Storage, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}

	storage := &Storage{
		db:          db,
		idGenerator: func() string { return "" },
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workspaces (
		team_id    TEXT PRIMARY KEY,
		bot_token  TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS series (
		series_id       TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		presenter       TEXT NOT NULL,
		topic_selection TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		start_time      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		frequency       TEXT NOT NULL,
		num_sessions    INTEGER NOT NULL CHECK (num_sessions > 0),
		is_paused       INTEGER NOT NULL DEFAULT 0,
		created_at      INTEGER NOT NULL,
		updated_at      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id  TEXT PRIMARY KEY,
		series_id   TEXT NOT NULL REFERENCES series(series_id) ON DELETE CASCADE,
		starts_at   INTEGER NOT NULL,
		presenter   TEXT NOT NULL,
		topic       TEXT NOT NULL,
		is_skipped  INTEGER NOT NULL DEFAULT 0,
		is_done     INTEGER NOT NULL DEFAULT 0,
		is_modified INTEGER NOT NULL DEFAULT 0,
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS organizers (
		user_id   TEXT NOT NULL,
		series_id TEXT NOT NULL REFERENCES series(series_id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, series_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_series ON sessions(series_id, starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_organizers_user ON organizers(user_id)`,
}

// Migrate applies the idempotent schema.
func (s *Storage) Migrate(ctx context.Context) error {
	for _, ddl := range migrations {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}

func (s *Storage) newID() string {
	if s.idGenerator == nil {
		return ""
	}
	return s.idGenerator()
}
