// Package application orchestrates the series lifecycle: draft configuration,
// confirmation into persisted series + sessions, per-session edits and the
// organizer queries behind the read/update flows.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/persistence"
	"github.com/example/serier/internal/recurrence"
	"github.com/example/serier/internal/timeconv"
)

// SeriesService owns the draft store and wires it to persistence. One draft
// exists per (team, channel, user) key; confirm and cancel both end the
// configuration session for that key.
type SeriesService struct {
	drafts   *draft.Store
	series   persistence.SeriesRepository
	sessions persistence.SessionRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewSeriesService wires dependencies for the series lifecycle.
func NewSeriesService(series persistence.SeriesRepository, sessions persistence.SessionRepository, now func() time.Time, logger *slog.Logger) *SeriesService {
	if now == nil {
		now = time.Now
	}
	return &SeriesService{
		drafts:   draft.NewStore(),
		series:   series,
		sessions: sessions,
		now:      now,
		logger:   logger,
	}
}

// BeginDraft starts a fresh configuration session for the key, replacing any
// draft already in progress there. The start slot is seeded from now in the
// user's zone, rounded forward to the next quarter hour.
func (s *SeriesService) BeginDraft(ctx context.Context, key draft.Key, anchorTS, timezone string, fromHelp bool) (*draft.Draft, error) {
	d, err := draft.New(anchorTS, s.now(), timezone, fromHelp)
	if err != nil {
		return nil, configErr("timezone", err)
	}
	s.drafts.Put(key, d)
	serviceLogger(ctx, s.logger, "begin_draft", "team", key.TeamID, "user", key.UserID).
		InfoContext(ctx, "draft started", "timezone", timezone, "from_help", fromHelp)
	return d, nil
}

// BeginEdit loads a persisted series into a draft for the key. Stored UTC
// values are converted into the editing user's zone so the menu shows local
// wall-clock times.
func (s *SeriesService) BeginEdit(ctx context.Context, key draft.Key, seriesID, anchorTS, timezone string) (*draft.Draft, error) {
	record, _, err := s.series.GetSeriesWithSessions(ctx, seriesID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	series, err := toDomainSeries(record, nil)
	if err != nil {
		return nil, err
	}

	date, clock, err := timeconv.FromUTC(series.StartsAt, timezone)
	if err != nil {
		return nil, configErr("timezone", err)
	}

	d := &draft.Draft{
		Title:          series.Title,
		Presenter:      series.Presenter,
		TopicSelection: series.TopicSelection,
		StartDate:      date,
		StartTime:      clock,
		Frequency:      series.Frequency,
		NumSessions:    series.NumSessions,
		Timezone:       timezone,
		AnchorTS:       anchorTS,
		SeriesID:       series.ID,
		IsPaused:       series.IsPaused,
	}
	s.drafts.Put(key, d)
	serviceLogger(ctx, s.logger, "begin_edit", "team", key.TeamID, "user", key.UserID).
		InfoContext(ctx, "edit draft started", "series_id", seriesID)
	return d, nil
}

// Draft returns the in-progress draft for the key, if any.
func (s *SeriesService) Draft(key draft.Key) (*draft.Draft, bool) {
	return s.drafts.Get(key)
}

// SetDraftAnchor records the message the configuration menu lives on, so
// later field updates can refresh it in place.
func (s *SeriesService) SetDraftAnchor(key draft.Key, anchorTS string) error {
	d, ok := s.drafts.Get(key)
	if !ok {
		return ErrNoActiveDraft
	}
	d.AnchorTS = anchorTS
	return nil
}

// SetDraftTitle updates the series title.
func (s *SeriesService) SetDraftTitle(key draft.Key, title string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	d.Title = title
	return d, nil
}

// SetDraftPresenter updates the default presenter.
func (s *SeriesService) SetDraftPresenter(key draft.Key, presenter string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	d.Presenter = presenter
	return d, nil
}

// SetDraftTopicSelection updates the topic policy from its menu wire value.
func (s *SeriesService) SetDraftTopicSelection(key draft.Key, value string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	selection, err := draft.ParseTopicSelection(value)
	if err != nil {
		return nil, configErr("topic selection", err)
	}
	d.TopicSelection = selection
	return d, nil
}

// SetDraftStartDate updates the first-session date from a datepicker literal.
func (s *SeriesService) SetDraftStartDate(key draft.Key, date string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	if err := d.SetStartDate(date); err != nil {
		return nil, configErr("date", err)
	}
	return d, nil
}

// SetDraftStartTime updates the wall-clock start time.
func (s *SeriesService) SetDraftStartTime(key draft.Key, clock string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	if err := d.SetStartTime(clock); err != nil {
		return nil, configErr("time", err)
	}
	return d, nil
}

// SetDraftFrequency updates the recurrence interval from its menu wire value.
func (s *SeriesService) SetDraftFrequency(key draft.Key, value string) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	freq, err := recurrence.ParseFrequency(value)
	if err != nil {
		return nil, configErr("frequency", err)
	}
	d.Frequency = freq
	return d, nil
}

// SetDraftNumSessions updates the occurrence count. Zero means unset and is
// rejected as an input.
func (s *SeriesService) SetDraftNumSessions(key draft.Key, count int) (*draft.Draft, error) {
	d, ok := s.drafts.Get(key)
	if !ok {
		return nil, ErrNoActiveDraft
	}
	if count <= 0 {
		return nil, configErr("session count", recurrence.ErrInvalidCount)
	}
	d.NumSessions = count
	return d, nil
}

// CancelDraft discards the configuration session for the key. Nothing is
// persisted; cancelling an unknown key is a no-op.
func (s *SeriesService) CancelDraft(ctx context.Context, key draft.Key) {
	s.drafts.Discard(key)
	serviceLogger(ctx, s.logger, "cancel_draft", "team", key.TeamID, "user", key.UserID).
		InfoContext(ctx, "draft cancelled")
}

// Confirm turns a complete draft into a persisted series with generated
// sessions and ends the configuration session.
//
// The start must resolve strictly into the future; otherwise ErrPastSchedule
// is returned and the draft is left untouched for correction. The check
// applies to edits as well as creations, so an edited series that already
// started needs a new future start before it can be confirmed.
func (s *SeriesService) Confirm(ctx context.Context, key draft.Key) (Series, error) {
	logger := serviceLogger(ctx, s.logger, "confirm", "team", key.TeamID, "user", key.UserID)

	d, ok := s.drafts.Get(key)
	if !ok {
		return Series{}, ErrNoActiveDraft
	}
	if !d.IsComplete() {
		return Series{}, ErrIncompleteDraft
	}

	start, err := timeconv.ToUTC(d.StartDate, d.StartTime, d.Timezone)
	if err != nil {
		return Series{}, configErr("schedule", err)
	}
	if !start.After(s.now()) {
		logger.InfoContext(ctx, "confirm rejected", "reason", "past_schedule", "starts_at", start)
		return Series{}, ErrPastSchedule
	}

	loc, err := timeconv.LoadZone(d.Timezone)
	if err != nil {
		return Series{}, configErr("timezone", err)
	}
	instants, err := recurrence.Expand(start, d.Frequency, d.NumSessions, loc)
	if err != nil {
		return Series{}, configErr("frequency", err)
	}

	startDate, startTime, err := timeconv.FromUTC(start, "UTC")
	if err != nil {
		return Series{}, err
	}
	endDate, _, err := timeconv.FromUTC(instants[len(instants)-1], "UTC")
	if err != nil {
		return Series{}, err
	}

	record := persistence.Series{
		ID:             d.SeriesID,
		Title:          d.Title,
		Presenter:      d.Presenter,
		TopicSelection: d.TopicSelection.Value(),
		StartDate:      startDate,
		StartTime:      startTime,
		EndDate:        endDate,
		Frequency:      d.Frequency.Value(),
		NumSessions:    d.NumSessions,
		IsPaused:       d.IsPaused,
	}
	generated := make([]persistence.Session, 0, len(instants))
	for _, instant := range instants {
		generated = append(generated, persistence.Session{
			StartsAt:  instant,
			Presenter: d.Presenter,
			Topic:     DefaultTopic,
		})
	}

	var (
		persisted persistence.Series
		rows      []persistence.Session
	)
	if d.SeriesID != "" {
		persisted, rows, err = s.series.UpdateSeries(ctx, record, generated)
	} else {
		persisted, rows, err = s.series.InsertSeries(ctx, record, key.UserID, generated)
	}
	if err != nil {
		logger.ErrorContext(ctx, "confirm failed", "error", err, "kind", ErrorKind(err))
		return Series{}, mapRepoError(err)
	}

	s.drafts.Discard(key)

	series, err := toDomainSeries(persisted, rows)
	if err != nil {
		return Series{}, err
	}
	logger.InfoContext(ctx, "series confirmed",
		"series_id", series.ID, "sessions", len(series.Sessions), "starts_at", series.StartsAt)
	return series, nil
}

// GetSeries loads a series with its sessions in occurrence order.
func (s *SeriesService) GetSeries(ctx context.Context, seriesID string) (Series, error) {
	record, sessions, err := s.series.GetSeriesWithSessions(ctx, seriesID)
	if err != nil {
		return Series{}, mapRepoError(err)
	}
	return toDomainSeries(record, sessions)
}

// ListSeriesByOrganizer returns the series the user organizes.
func (s *SeriesService) ListSeriesByOrganizer(ctx context.Context, userID string) ([]SeriesRef, error) {
	records, err := s.series.ListSeriesByOrganizer(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	refs := make([]SeriesRef, 0, len(records))
	for _, record := range records {
		refs = append(refs, SeriesRef{ID: record.ID, Title: record.Title})
	}
	return refs, nil
}

// DeleteSeries removes a series and everything belonging to it.
func (s *SeriesService) DeleteSeries(ctx context.Context, seriesID string) error {
	if err := s.series.DeleteSeries(ctx, seriesID); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "delete_series").InfoContext(ctx, "series deleted", "series_id", seriesID)
	return nil
}

// Session loads one session by its persisted identity.
func (s *SeriesService) Session(ctx context.Context, sessionID string) (Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, mapRepoError(err)
	}
	return toDomainSession(session), nil
}

// SetSessionPresenter changes the presenter of one session, addressed by its
// persisted identity. Other sessions are untouched.
func (s *SeriesService) SetSessionPresenter(ctx context.Context, sessionID, presenter string) (Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, mapRepoError(err)
	}
	if err := s.sessions.UpdateSessionPresenter(ctx, sessionID, presenter); err != nil {
		return Session{}, mapRepoError(err)
	}
	session.Presenter = presenter
	return toDomainSession(session), nil
}

// SetSessionTopic changes the topic of one session.
func (s *SeriesService) SetSessionTopic(ctx context.Context, sessionID, topic string) (Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, mapRepoError(err)
	}
	if err := s.sessions.UpdateSessionTopic(ctx, sessionID, topic); err != nil {
		return Session{}, mapRepoError(err)
	}
	session.Topic = topic
	return toDomainSession(session), nil
}
