package application

import (
	"time"

	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/persistence"
	"github.com/example/serier/internal/recurrence"
	"github.com/example/serier/internal/timeconv"
)

// DefaultTopic is the sentinel topic assigned to freshly generated sessions.
const DefaultTopic = "Not Selected"

// Series is the committed series shape handed to rendering, with its start
// resolved to a UTC instant and sessions in occurrence order.
type Series struct {
	ID             string
	Title          string
	Presenter      string
	TopicSelection draft.TopicSelection
	StartsAt       time.Time
	EndDate        string
	Frequency      recurrence.Frequency
	NumSessions    int
	IsPaused       bool
	Sessions       []Session
}

// Session is one materialized occurrence.
type Session struct {
	ID        string
	SeriesID  string
	StartsAt  time.Time
	Presenter string
	Topic     string
}

// SeriesRef is the id/title pair surfaced by organizer listings.
type SeriesRef struct {
	ID    string
	Title string
}

func toDomainSeries(record persistence.Series, sessions []persistence.Session) (Series, error) {
	startsAt, err := timeconv.ToUTC(record.StartDate, record.StartTime, "UTC")
	if err != nil {
		return Series{}, err
	}
	freq, err := recurrence.ParseFrequency(record.Frequency)
	if err != nil {
		return Series{}, err
	}
	topic, err := draft.ParseTopicSelection(record.TopicSelection)
	if err != nil {
		return Series{}, err
	}

	series := Series{
		ID:             record.ID,
		Title:          record.Title,
		Presenter:      record.Presenter,
		TopicSelection: topic,
		StartsAt:       startsAt,
		EndDate:        record.EndDate,
		Frequency:      freq,
		NumSessions:    record.NumSessions,
		IsPaused:       record.IsPaused,
		Sessions:       make([]Session, 0, len(sessions)),
	}
	for _, session := range sessions {
		series.Sessions = append(series.Sessions, toDomainSession(session))
	}
	return series, nil
}

func toDomainSession(record persistence.Session) Session {
	return Session{
		ID:        record.ID,
		SeriesID:  record.SeriesID,
		StartsAt:  record.StartsAt,
		Presenter: record.Presenter,
		Topic:     record.Topic,
	}
}
