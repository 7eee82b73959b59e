package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/serier/internal/persistence"
)

const seriesColumns = `series_id, title, presenter, topic_selection, start_date,
	start_time, end_date, frequency, num_sessions, is_paused, created_at, updated_at`

// InsertSeries persists a new series, its organizer link and the generated
// sessions atomically.
func (s *Storage) InsertSeries(ctx context.Context, series persistence.Series, organizerID string, sessions []persistence.Session) (persistence.Series, []persistence.Session, error) {
	now := s.now().UTC()
	if series.ID == "" {
		series.ID = s.newID()
	}
	series.CreatedAt = now
	series.UpdatedAt = now

	inserted := make([]persistence.Session, len(sessions))

	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		if err := insertSeriesRow(tx, series); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO organizers (user_id, series_id) VALUES (?, ?)`,
			organizerID, series.ID,
		); err != nil {
			return mapError(err)
		}

		for i, session := range sessions {
			session.SeriesID = series.ID
			persisted, err := s.insertSessionRow(tx, session, now)
			if err != nil {
				return err
			}
			inserted[i] = persisted
		}
		return nil
	})
	if err != nil {
		return persistence.Series{}, nil, err
	}

	return series, inserted, nil
}

// UpdateSeries rewrites the series row and replaces all of its sessions with
// the supplied regeneration in one transaction.
func (s *Storage) UpdateSeries(ctx context.Context, series persistence.Series, sessions []persistence.Session) (persistence.Series, []persistence.Session, error) {
	now := s.now().UTC()
	series.UpdatedAt = now

	inserted := make([]persistence.Session, len(sessions))

	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE series
			 SET title = ?, presenter = ?, topic_selection = ?, start_date = ?,
			     start_time = ?, end_date = ?, frequency = ?, num_sessions = ?,
			     is_paused = ?, updated_at = ?
			 WHERE series_id = ?`,
			series.Title, series.Presenter, series.TopicSelection, series.StartDate,
			series.StartTime, series.EndDate, series.Frequency, series.NumSessions,
			boolToInt(series.IsPaused), now.Unix(),
			series.ID,
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

		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE series_id = ?`, series.ID); err != nil {
			return mapError(err)
		}

		for i, session := range sessions {
			session.SeriesID = series.ID
			persisted, err := s.insertSessionRow(tx, session, now)
			if err != nil {
				return err
			}
			inserted[i] = persisted
		}
		return nil
	})
	if err != nil {
		return persistence.Series{}, nil, err
	}

	return series, inserted, nil
}

// DeleteSeries removes the series; sessions and organizer rows cascade.
func (s *Storage) DeleteSeries(ctx context.Context, seriesID string) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM series WHERE series_id = ?`, seriesID)
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
	})
}

// GetSeriesWithSessions loads one series and its sessions in occurrence order.
func (s *Storage) GetSeriesWithSessions(ctx context.Context, seriesID string) (persistence.Series, []persistence.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE series_id = ?`, seriesID)

	series, err := scanSeries(row)
	if err != nil {
		return persistence.Series{}, nil, mapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, series_id, starts_at, presenter, topic,
		        is_skipped, is_done, is_modified, created_at, updated_at
		 FROM sessions WHERE series_id = ? ORDER BY starts_at ASC, session_id ASC`, seriesID)
	if err != nil {
		return persistence.Series{}, nil, mapError(err)
	}
	defer rows.Close()

	var sessions []persistence.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return persistence.Series{}, nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return persistence.Series{}, nil, mapError(err)
	}

	return series, sessions, nil
}

// ListSeriesByOrganizer returns id/title pairs for every series the user
// organizes, oldest first.
func (s *Storage) ListSeriesByOrganizer(ctx context.Context, organizerID string) ([]persistence.SeriesRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.series_id, s.title
		 FROM series s
		 JOIN organizers o ON o.series_id = s.series_id
		 WHERE o.user_id = ?
		 ORDER BY s.created_at ASC, s.series_id ASC`, organizerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var refs []persistence.SeriesRef
	for rows.Next() {
		var ref persistence.SeriesRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return refs, nil
}

func insertSeriesRow(tx *sql.Tx, series persistence.Series) error {
	_, err := tx.Exec(
		`INSERT INTO series (`+seriesColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		series.ID, series.Title, series.Presenter, series.TopicSelection,
		series.StartDate, series.StartTime, series.EndDate, series.Frequency,
		series.NumSessions, boolToInt(series.IsPaused),
		series.CreatedAt.Unix(), series.UpdatedAt.Unix(),
	)
	return mapError(err)
}

func (s *Storage) insertSessionRow(tx *sql.Tx, session persistence.Session, now time.Time) (persistence.Session, error) {
	if session.ID == "" {
		session.ID = s.newID()
	}
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := tx.Exec(
		`INSERT INTO sessions (session_id, series_id, starts_at, presenter, topic,
		        is_skipped, is_done, is_modified, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.SeriesID, session.StartsAt.UTC().Unix(),
		session.Presenter, session.Topic,
		boolToInt(session.Skipped), boolToInt(session.Done), boolToInt(session.Modified),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(row rowScanner) (persistence.Series, error) {
	var (
		series             persistence.Series
		paused             int
		createdAt, updated int64
	)
	err := row.Scan(
		&series.ID, &series.Title, &series.Presenter, &series.TopicSelection,
		&series.StartDate, &series.StartTime, &series.EndDate, &series.Frequency,
		&series.NumSessions, &paused, &createdAt, &updated,
	)
	if err != nil {
		return persistence.Series{}, err
	}
	series.IsPaused = paused != 0
	series.CreatedAt = time.Unix(createdAt, 0).UTC()
	series.UpdatedAt = time.Unix(updated, 0).UTC()
	return series, nil
}

func scanSession(row rowScanner) (persistence.Session, error) {
	var (
		session                      persistence.Session
		startsAt, createdAt, updated int64
		skipped, done, modified      int
	)
	err := row.Scan(
		&session.ID, &session.SeriesID, &startsAt, &session.Presenter, &session.Topic,
		&skipped, &done, &modified, &createdAt, &updated,
	)
	if err != nil {
		return persistence.Session{}, err
	}
	session.StartsAt = time.Unix(startsAt, 0).UTC()
	session.Skipped = skipped != 0
	session.Done = done != 0
	session.Modified = modified != 0
	session.CreatedAt = time.Unix(createdAt, 0).UTC()
	session.UpdatedAt = time.Unix(updated, 0).UTC()
	return session, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
