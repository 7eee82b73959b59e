package persistence

import "context"

// SeriesRepository stores committed series together with their organizer link
// and generated sessions. The multi-row operations are atomic: a failure part
// way through an insert, regenerate or delete leaves no partial state behind.
type SeriesRepository interface {
	// InsertSeries persists a new series, its organizer membership and the
	// generated session rows in one transaction. Identifiers left empty are
	// assigned by the repository and returned on the result values.
	InsertSeries(ctx context.Context, series Series, organizerID string, sessions []Session) (Series, []Session, error)

	// UpdateSeries rewrites the series row and replaces every session row for
	// it with the supplied regeneration, all in one transaction. Prior
	// per-session edits are discarded by design.
	UpdateSeries(ctx context.Context, series Series, sessions []Session) (Series, []Session, error)

	// DeleteSeries removes the series, its sessions and its organizer rows.
	DeleteSeries(ctx context.Context, seriesID string) error

	// GetSeriesWithSessions loads one series and its sessions ordered by
	// occurrence time.
	GetSeriesWithSessions(ctx context.Context, seriesID string) (Series, []Session, error)

	// ListSeriesByOrganizer returns the id/title pairs of every series the
	// user organizes, ordered by creation time.
	ListSeriesByOrganizer(ctx context.Context, organizerID string) ([]SeriesRef, error)
}

// SessionRepository exposes single-field mutation of materialized sessions.
type SessionRepository interface {
	GetSession(ctx context.Context, sessionID string) (Session, error)
	UpdateSessionPresenter(ctx context.Context, sessionID, presenter string) error
	UpdateSessionTopic(ctx context.Context, sessionID, topic string) error
}

// WorkspaceRepository stores installed teams and their bot tokens.
type WorkspaceRepository interface {
	UpsertWorkspace(ctx context.Context, workspace Workspace) error
	GetWorkspace(ctx context.Context, teamID string) (Workspace, error)
}
