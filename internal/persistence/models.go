package persistence

import "time"

// Series represents a committed series row. Date and time literals are UTC
// once persisted: start_date "YYYY-MM-DD", start_time 24-hour "HH:MM",
// end_date a snapshot of the last occurrence's date taken at confirmation and
// never recomputed.
type Series struct {
	ID             string
	Title          string
	Presenter      string
	TopicSelection string
	StartDate      string
	StartTime      string
	EndDate        string
	Frequency      string
	NumSessions    int
	IsPaused       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Session represents one materialized occurrence of a series. StartsAt is
// stored as UTC epoch seconds. The skipped/done/modified flags are storage
// columns reserved for later flows.
type Session struct {
	ID        string
	SeriesID  string
	StartsAt  time.Time
	Presenter string
	Topic     string
	Skipped   bool
	Done      bool
	Modified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeriesRef is the compact listing shape used by organizer queries.
type SeriesRef struct {
	ID    string
	Title string
}

// Workspace holds the bot token for an installed Slack team.
type Workspace struct {
	TeamID    string
	BotToken  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
