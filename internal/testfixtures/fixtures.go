// Package testfixtures provides deterministic clocks, identifier generators,
// record fixtures and a SQLite harness shared by the package tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/serier/internal/persistence"
)

var (
	seriesCounter  uint64
	sessionCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// SeriesOption configures the generated series fixture.
type SeriesOption func(*persistence.Series)

// NewSeriesFixture returns a deterministic series record with optional
// overrides. The record is valid for insertion as-is.
func NewSeriesFixture(opts ...SeriesOption) persistence.Series {
	idx := atomic.AddUint64(&seriesCounter, 1)
	fixture := persistence.Series{
		ID:             fmt.Sprintf("series-%03d", idx),
		Title:          fmt.Sprintf("Series %03d", idx),
		Presenter:      fmt.Sprintf("U%05d", idx),
		TopicSelection: "pre-determined",
		StartDate:      "2024-02-05",
		StartTime:      "17:00",
		EndDate:        "2024-02-26",
		Frequency:      "every-week",
		NumSessions:    4,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSeriesID overrides the generated series ID.
func WithSeriesID(id string) SeriesOption {
	return func(s *persistence.Series) {
		s.ID = id
	}
}

// WithSeriesTitle overrides the generated title.
func WithSeriesTitle(title string) SeriesOption {
	return func(s *persistence.Series) {
		s.Title = title
	}
}

// WithSeriesFrequency overrides the persisted frequency value.
func WithSeriesFrequency(frequency string) SeriesOption {
	return func(s *persistence.Series) {
		s.Frequency = frequency
	}
}

// WithSeriesSchedule overrides the persisted schedule literals.
func WithSeriesSchedule(startDate, startTime, endDate string, numSessions int) SeriesOption {
	return func(s *persistence.Series) {
		s.StartDate = startDate
		s.StartTime = startTime
		s.EndDate = endDate
		s.NumSessions = numSessions
	}
}

// SessionOption configures the generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session record bound to the
// given series.
func NewSessionFixture(seriesID string, opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	fixture := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		SeriesID:  seriesID,
		StartsAt:  referenceTime.Add(time.Duration(idx) * 24 * time.Hour),
		Presenter: fmt.Sprintf("U%05d", idx),
		Topic:     "Not Selected",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionStartsAt overrides the session instant.
func WithSessionStartsAt(t time.Time) SessionOption {
	return func(s *persistence.Session) {
		s.StartsAt = t
	}
}

// WithSessionPresenter overrides the session presenter.
func WithSessionPresenter(presenter string) SessionOption {
	return func(s *persistence.Session) {
		s.Presenter = presenter
	}
}

// WithSessionTopic overrides the session topic.
func WithSessionTopic(topic string) SessionOption {
	return func(s *persistence.Session) {
		s.Topic = topic
	}
}
