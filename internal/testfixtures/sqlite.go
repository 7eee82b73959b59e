package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/serier/internal/persistence"
	"github.com/example/serier/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// storage instance for integration-style persistence tests. Record IDs are
// assigned by a deterministic generator so assertions can name them.
type SQLiteHarness struct {
	Series     persistence.SeriesRepository
	Sessions   persistence.SessionRepository
	Workspaces persistence.WorkspaceRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "serier.db")

	storage, err := sqlite.Open(path,
		sqlite.WithIDGenerator(NewIDGenerator("id").Next),
		sqlite.WithClock(NewClock(ReferenceTime()).Now))
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Series:     storage,
		Sessions:   storage,
		Workspaces: storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
