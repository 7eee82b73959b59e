package sqlite

import (
	"context"

	"github.com/example/serier/internal/persistence"
)

// GetSession loads a single session row.
func (s *Storage) GetSession(ctx context.Context, sessionID string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, series_id, starts_at, presenter, topic,
		        is_skipped, is_done, is_modified, created_at, updated_at
		 FROM sessions WHERE session_id = ?`, sessionID)

	session, err := scanSession(row)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// UpdateSessionPresenter persists a presenter change for one session.
func (s *Storage) UpdateSessionPresenter(ctx context.Context, sessionID, presenter string) error {
	return s.updateSessionField(ctx, sessionID, "presenter", presenter)
}

// UpdateSessionTopic persists a topic change for one session.
func (s *Storage) UpdateSessionTopic(ctx context.Context, sessionID, topic string) error {
	return s.updateSessionField(ctx, sessionID, "topic", topic)
}

// updateSessionField updates one column of a session row. The column name
// comes from the two callers above, never from user input.
func (s *Storage) updateSessionField(ctx context.Context, sessionID, column, value string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET `+column+` = ?, updated_at = ? WHERE session_id = ?`,
		value, s.now().UTC().Unix(), sessionID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
