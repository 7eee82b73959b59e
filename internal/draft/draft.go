// Package draft models the in-progress series configuration a user builds up
// through the interactive creation menu, plus the store that keeps one draft
// per (team, channel, user).
package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/serier/internal/recurrence"
	"github.com/example/serier/internal/timeconv"
)

// DefaultTitle seeds a fresh draft before the user renames the series.
const DefaultTitle = "My Team's Weekly Brownbag"

// TopicSelection describes how session topics are chosen for a series.
type TopicSelection int

const (
	// TopicUnset indicates the user has not chosen a topic policy yet.
	TopicUnset TopicSelection = iota
	// TopicPreDetermined means the organizer assigns topics up front.
	TopicPreDetermined
	// TopicPresenterChoice means each presenter picks their own topic.
	TopicPresenterChoice
)

// ErrInvalidTopicSelection indicates an unknown topic-selection wire value.
var ErrInvalidTopicSelection = errors.New("draft: invalid topic selection")

// Value returns the select-menu wire value for the topic policy.
func (t TopicSelection) Value() string {
	switch t {
	case TopicPreDetermined:
		return "pre-determined"
	case TopicPresenterChoice:
		return "presenter_choice"
	default:
		return ""
	}
}

// String returns the label shown in menus and summaries.
func (t TopicSelection) String() string {
	switch t {
	case TopicPreDetermined:
		return "Pre-determined"
	case TopicPresenterChoice:
		return "Presenter's choice"
	default:
		return "Not Selected"
	}
}

// ParseTopicSelection maps a wire value back to its TopicSelection.
func ParseTopicSelection(value string) (TopicSelection, error) {
	switch value {
	case "pre-determined":
		return TopicPreDetermined, nil
	case "presenter_choice":
		return TopicPresenterChoice, nil
	default:
		return TopicUnset, fmt.Errorf("%w: %q", ErrInvalidTopicSelection, value)
	}
}

// Key identifies the owner of a draft. Keying by team, channel and user keeps
// concurrent configuration sessions isolated from each other.
type Key struct {
	TeamID    string
	ChannelID string
	UserID    string
}

// Draft holds the partial series configuration while the user is still
// editing. Date and time literals are wall-clock values in Timezone until the
// draft is confirmed.
type Draft struct {
	Title          string
	Presenter      string
	TopicSelection TopicSelection
	StartDate      string
	StartTime      string
	Frequency      recurrence.Frequency
	NumSessions    int
	Timezone       string
	AnchorTS       string
	FromHelp       bool

	// SeriesID is set only when the draft was loaded to edit a persisted
	// series; empty for a brand-new one. IsPaused carries the stored flag
	// through an edit unchanged; no menu element touches it.
	SeriesID string
	IsPaused bool
}

// New seeds a creation draft: default title, everything else unset, and the
// start slot set to now in the user's zone rounded forward to the next
// quarter hour.
func New(anchorTS string, now time.Time, timezone string, fromHelp bool) (*Draft, error) {
	date, clock, err := timeconv.FromUTC(timeconv.NextQuarterHour(now), timezone)
	if err != nil {
		return nil, err
	}
	return &Draft{
		Title:     DefaultTitle,
		StartDate: date,
		StartTime: clock,
		Timezone:  timezone,
		AnchorTS:  anchorTS,
		FromHelp:  fromHelp,
	}, nil
}

// IsComplete reports whether every field without a default has been set.
// Title and start date always carry defaults and are excluded.
func (d *Draft) IsComplete() bool {
	return d != nil &&
		d.Presenter != "" &&
		d.TopicSelection != TopicUnset &&
		d.StartTime != "" &&
		d.Frequency != recurrence.FrequencyUnset &&
		d.NumSessions > 0
}

// SetStartDate validates and stores a calendar date literal.
func (d *Draft) SetStartDate(date string) error {
	if _, err := time.Parse(timeconv.DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", timeconv.ErrBadDate, date)
	}
	d.StartDate = date
	return nil
}

// SetStartTime validates and stores a wall-clock literal.
func (d *Draft) SetStartTime(clock string) error {
	if _, err := time.Parse(timeconv.ClockLayout, clock); err != nil {
		return fmt.Errorf("%w: %q", timeconv.ErrBadClock, clock)
	}
	d.StartTime = clock
	return nil
}

// EndDatePreview derives the last-occurrence date for the summary line. It is
// only available once both frequency and session count are set; a zero count
// means "unset", never a zero-occurrence series.
func (d *Draft) EndDatePreview() (string, bool) {
	if d == nil || d.Frequency == recurrence.FrequencyUnset || d.NumSessions <= 0 {
		return "", false
	}
	start, err := time.Parse(timeconv.DateLayout, d.StartDate)
	if err != nil {
		return "", false
	}
	last, err := recurrence.LastDate(start, d.Frequency, d.NumSessions)
	if err != nil {
		return "", false
	}
	return last.Format(timeconv.DateLayout), true
}

// Clone returns a deep copy, used to keep a rollback point across operations
// that must leave the draft untouched on failure.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	copied := *d
	return &copied
}
