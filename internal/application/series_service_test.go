package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/persistence"
	"github.com/example/serier/internal/recurrence"
)

type repoStub struct {
	idSerial int

	series      map[string]persistence.Series
	sessions    map[string][]persistence.Session
	organizers  map[string][]string
	insertOrder []string

	insertErr error
	updateErr error
}

func newRepoStub() *repoStub {
	return &repoStub{
		series:     make(map[string]persistence.Series),
		sessions:   make(map[string][]persistence.Session),
		organizers: make(map[string][]string),
	}
}

func (r *repoStub) nextID() string {
	r.idSerial++
	return fmt.Sprintf("gen-%d", r.idSerial)
}

func (r *repoStub) InsertSeries(_ context.Context, series persistence.Series, organizerID string, sessions []persistence.Session) (persistence.Series, []persistence.Session, error) {
	if r.insertErr != nil {
		return persistence.Series{}, nil, r.insertErr
	}
	if series.ID == "" {
		series.ID = r.nextID()
	}
	stored := make([]persistence.Session, len(sessions))
	for i, session := range sessions {
		if session.ID == "" {
			session.ID = r.nextID()
		}
		session.SeriesID = series.ID
		stored[i] = session
	}
	r.series[series.ID] = series
	r.sessions[series.ID] = stored
	r.organizers[organizerID] = append(r.organizers[organizerID], series.ID)
	r.insertOrder = append(r.insertOrder, series.ID)
	return series, stored, nil
}

func (r *repoStub) UpdateSeries(_ context.Context, series persistence.Series, sessions []persistence.Session) (persistence.Series, []persistence.Session, error) {
	if r.updateErr != nil {
		return persistence.Series{}, nil, r.updateErr
	}
	if _, ok := r.series[series.ID]; !ok {
		return persistence.Series{}, nil, persistence.ErrNotFound
	}
	stored := make([]persistence.Session, len(sessions))
	for i, session := range sessions {
		if session.ID == "" {
			session.ID = r.nextID()
		}
		session.SeriesID = series.ID
		stored[i] = session
	}
	r.series[series.ID] = series
	r.sessions[series.ID] = stored
	return series, stored, nil
}

func (r *repoStub) DeleteSeries(_ context.Context, seriesID string) error {
	if _, ok := r.series[seriesID]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.series, seriesID)
	delete(r.sessions, seriesID)
	return nil
}

func (r *repoStub) GetSeriesWithSessions(_ context.Context, seriesID string) (persistence.Series, []persistence.Session, error) {
	series, ok := r.series[seriesID]
	if !ok {
		return persistence.Series{}, nil, persistence.ErrNotFound
	}
	return series, r.sessions[seriesID], nil
}

func (r *repoStub) ListSeriesByOrganizer(_ context.Context, organizerID string) ([]persistence.SeriesRef, error) {
	var refs []persistence.SeriesRef
	for _, id := range r.organizers[organizerID] {
		if series, ok := r.series[id]; ok {
			refs = append(refs, persistence.SeriesRef{ID: series.ID, Title: series.Title})
		}
	}
	return refs, nil
}

func (r *repoStub) GetSession(_ context.Context, sessionID string) (persistence.Session, error) {
	for _, sessions := range r.sessions {
		for _, session := range sessions {
			if session.ID == sessionID {
				return session, nil
			}
		}
	}
	return persistence.Session{}, persistence.ErrNotFound
}

func (r *repoStub) UpdateSessionPresenter(_ context.Context, sessionID, presenter string) error {
	return r.updateSessionField(sessionID, func(s *persistence.Session) { s.Presenter = presenter })
}

func (r *repoStub) UpdateSessionTopic(_ context.Context, sessionID, topic string) error {
	return r.updateSessionField(sessionID, func(s *persistence.Session) { s.Topic = topic })
}

func (r *repoStub) updateSessionField(sessionID string, mutate func(*persistence.Session)) error {
	for seriesID, sessions := range r.sessions {
		for i := range sessions {
			if sessions[i].ID == sessionID {
				mutate(&sessions[i])
				r.sessions[seriesID] = sessions
				return nil
			}
		}
	}
	return persistence.ErrNotFound
}

func newTestService(repo *repoStub, now time.Time) *SeriesService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSeriesService(repo, repo, func() time.Time { return now }, logger)
}

func completeDraft(t *testing.T, service *SeriesService, key draft.Key) {
	t.Helper()
	if _, err := service.SetDraftPresenter(key, "U-presenter"); err != nil {
		t.Fatalf("SetDraftPresenter returned error: %v", err)
	}
	if _, err := service.SetDraftTopicSelection(key, "pre-determined"); err != nil {
		t.Fatalf("SetDraftTopicSelection returned error: %v", err)
	}
	if _, err := service.SetDraftStartDate(key, "2024-01-01"); err != nil {
		t.Fatalf("SetDraftStartDate returned error: %v", err)
	}
	if _, err := service.SetDraftStartTime(key, "09:00"); err != nil {
		t.Fatalf("SetDraftStartTime returned error: %v", err)
	}
	if _, err := service.SetDraftFrequency(key, "every-week"); err != nil {
		t.Fatalf("SetDraftFrequency returned error: %v", err)
	}
	if _, err := service.SetDraftNumSessions(key, 4); err != nil {
		t.Fatalf("SetDraftNumSessions returned error: %v", err)
	}
}

func testKey() draft.Key {
	return draft.Key{TeamID: "T1", ChannelID: "C1", UserID: "U-organizer"}
}

func TestConfirmCreatesSeries(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "1700000000.000100", "America/Los_Angeles", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)

	series, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	// 09:00 Los Angeles on 2024-01-01 is 17:00 UTC; weekly steps keep the
	// instant fixed.
	want := []time.Time{
		time.Date(2024, time.January, 1, 17, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 8, 17, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 15, 17, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 22, 17, 0, 0, 0, time.UTC),
	}
	if len(series.Sessions) != len(want) {
		t.Fatalf("expected %d sessions, got %d", len(want), len(series.Sessions))
	}
	for i, session := range series.Sessions {
		if !session.StartsAt.Equal(want[i]) {
			t.Fatalf("session %d instant = %v, want %v", i, session.StartsAt, want[i])
		}
		if session.Presenter != "U-presenter" {
			t.Fatalf("session %d presenter = %q", i, session.Presenter)
		}
		if session.Topic != DefaultTopic {
			t.Fatalf("session %d topic = %q, want %q", i, session.Topic, DefaultTopic)
		}
	}

	stored := repo.series[series.ID]
	if stored.StartDate != "2024-01-01" || stored.StartTime != "17:00" {
		t.Fatalf("persisted start = (%q, %q), want UTC literals", stored.StartDate, stored.StartTime)
	}
	if stored.EndDate != "2024-01-22" {
		t.Fatalf("persisted end date = %q, want 2024-01-22", stored.EndDate)
	}

	if _, ok := service.Draft(key); ok {
		t.Fatal("draft must be discarded after confirm")
	}

	refs, err := service.ListSeriesByOrganizer(ctx, key.UserID)
	if err != nil {
		t.Fatalf("ListSeriesByOrganizer returned error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != series.ID {
		t.Fatalf("organizer listing = %+v", refs)
	}
}

func TestConfirmRejectsPastSchedule(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "America/Los_Angeles", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)

	before, _ := service.Draft(key)
	snapshot := before.Clone()

	if _, err := service.Confirm(ctx, key); !errors.Is(err, ErrPastSchedule) {
		t.Fatalf("expected ErrPastSchedule, got %v", err)
	}

	// The draft survives the rejection unchanged so the user can correct it.
	after, ok := service.Draft(key)
	if !ok {
		t.Fatal("draft must survive a past-schedule rejection")
	}
	if !reflect.DeepEqual(snapshot, after) {
		t.Fatalf("draft mutated by rejected confirm: %+v != %+v", snapshot, after)
	}
	if len(repo.series) != 0 {
		t.Fatal("nothing may be persisted on rejection")
	}

	// A boundary start equal to now is also rejected.
	if _, err := service.SetDraftStartDate(key, "2024-06-01"); err != nil {
		t.Fatalf("SetDraftStartDate returned error: %v", err)
	}
	if _, err := service.SetDraftStartTime(key, "05:00"); err != nil { // 05:00 PDT == 12:00 UTC
		t.Fatalf("SetDraftStartTime returned error: %v", err)
	}
	if _, err := service.Confirm(ctx, key); !errors.Is(err, ErrPastSchedule) {
		t.Fatalf("expected ErrPastSchedule at boundary, got %v", err)
	}
}

func TestConfirmRejectsIncompleteDraft(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	service := newTestService(repo, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC))
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "UTC", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}

	if _, err := service.Confirm(ctx, key); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("expected ErrIncompleteDraft, got %v", err)
	}
	if _, err := service.Confirm(ctx, draft.Key{TeamID: "T1", ChannelID: "C1", UserID: "stranger"}); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("expected ErrNoActiveDraft, got %v", err)
	}
}

func TestConfirmWeekendStartForWeekdaySeries(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	service := newTestService(repo, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC))
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "UTC", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)
	if _, err := service.SetDraftFrequency(key, "every-weekday"); err != nil {
		t.Fatalf("SetDraftFrequency returned error: %v", err)
	}
	if _, err := service.SetDraftStartDate(key, "2024-01-06"); err != nil { // Saturday
		t.Fatalf("SetDraftStartDate returned error: %v", err)
	}

	var cfgErr *ConfigurationError
	_, err := service.Confirm(ctx, key)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !errors.Is(err, recurrence.ErrWeekendStart) {
		t.Fatalf("expected wrapped ErrWeekendStart, got %v", err)
	}
	if _, ok := service.Draft(key); !ok {
		t.Fatal("draft must survive a weekend-start rejection")
	}
}

func TestBeginEditAndRegenerate(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "America/Los_Angeles", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)
	created, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	staleIDs := make([]string, 0, len(created.Sessions))
	for _, session := range created.Sessions {
		staleIDs = append(staleIDs, session.ID)
	}

	d, err := service.BeginEdit(ctx, key, created.ID, "1700000001.000200", "America/Los_Angeles")
	if err != nil {
		t.Fatalf("BeginEdit returned error: %v", err)
	}
	// Stored UTC literals come back as the organizer's wall clock.
	if d.StartDate != "2024-01-01" || d.StartTime != "09:00" {
		t.Fatalf("edit draft slot = (%q, %q)", d.StartDate, d.StartTime)
	}
	if d.SeriesID != created.ID {
		t.Fatalf("edit draft series ID = %q, want %q", d.SeriesID, created.ID)
	}

	if _, err := service.SetDraftNumSessions(key, 2); err != nil {
		t.Fatalf("SetDraftNumSessions returned error: %v", err)
	}
	updated, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm (edit) returned error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("edit must keep the series ID, got %q", updated.ID)
	}
	if len(updated.Sessions) != 2 {
		t.Fatalf("expected 2 regenerated sessions, got %d", len(updated.Sessions))
	}
	// Regeneration replaces the materialized sessions; old identities die.
	for _, stale := range staleIDs {
		if _, err := service.Session(ctx, stale); !errors.Is(err, ErrNotFound) {
			t.Fatalf("stale session %s still reachable, err = %v", stale, err)
		}
	}

	if _, err := service.BeginEdit(ctx, key, "missing", "", "UTC"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditKeepsPausedFlag(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "America/Los_Angeles", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)
	created, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	// Pause the stored record out of band; no menu element touches the flag.
	record := repo.series[created.ID]
	record.IsPaused = true
	repo.series[created.ID] = record

	if _, err := service.BeginEdit(ctx, key, created.ID, "1700000001.000300", "America/Los_Angeles"); err != nil {
		t.Fatalf("BeginEdit returned error: %v", err)
	}
	if _, err := service.SetDraftTitle(key, "Renamed"); err != nil {
		t.Fatalf("SetDraftTitle returned error: %v", err)
	}
	updated, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm (edit) returned error: %v", err)
	}
	if !updated.IsPaused {
		t.Fatal("edit must carry the paused flag through")
	}
	if !repo.series[created.ID].IsPaused {
		t.Fatal("stored paused flag was reset by the edit")
	}
}

func TestSessionMutations(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "UTC", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)
	created, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	target := created.Sessions[1]
	session, err := service.SetSessionPresenter(ctx, target.ID, "U-other")
	if err != nil {
		t.Fatalf("SetSessionPresenter returned error: %v", err)
	}
	if session.Presenter != "U-other" {
		t.Fatalf("presenter = %q, want U-other", session.Presenter)
	}

	session, err = service.SetSessionTopic(ctx, target.ID, "Error handling patterns")
	if err != nil {
		t.Fatalf("SetSessionTopic returned error: %v", err)
	}
	if session.Topic != "Error handling patterns" {
		t.Fatalf("topic = %q", session.Topic)
	}

	// The edit is scoped to one session.
	reloaded, err := service.GetSeries(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSeries returned error: %v", err)
	}
	for i, s := range reloaded.Sessions {
		if i == 1 {
			continue
		}
		if s.Presenter != "U-presenter" || s.Topic != DefaultTopic {
			t.Fatalf("session %d mutated: %+v", i, s)
		}
	}

	if _, err := service.SetSessionTopic(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelDraft(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	service := newTestService(repo, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC))
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "UTC", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	service.CancelDraft(ctx, key)
	if _, ok := service.Draft(key); ok {
		t.Fatal("cancelled draft must be gone")
	}
	if len(repo.series) != 0 {
		t.Fatal("cancel must not persist anything")
	}

	// Cancelling with nothing in progress is a no-op.
	service.CancelDraft(ctx, key)
}

func TestDeleteSeries(t *testing.T) {
	t.Parallel()

	repo := newRepoStub()
	now := time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	key := testKey()
	ctx := context.Background()

	if _, err := service.BeginDraft(ctx, key, "", "UTC", false); err != nil {
		t.Fatalf("BeginDraft returned error: %v", err)
	}
	completeDraft(t, service, key)
	created, err := service.Confirm(ctx, key)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	if err := service.DeleteSeries(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSeries returned error: %v", err)
	}
	if _, err := service.GetSeries(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := service.DeleteSeries(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}
