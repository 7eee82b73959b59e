// Package timeconv converts between a user's wall-clock time in a named IANA
// zone and absolute UTC instants. All persisted literals use DateLayout and
// ClockLayout exactly.
package timeconv

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date literal format used across storage and UI.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour wall-clock literal format.
	ClockLayout = "15:04"
)

var (
	// ErrUnknownZone indicates the IANA zone name could not be resolved.
	ErrUnknownZone = errors.New("timeconv: unknown timezone")
	// ErrBadDate indicates a calendar date literal did not match DateLayout.
	ErrBadDate = errors.New("timeconv: malformed date")
	// ErrBadClock indicates a wall-clock literal did not match ClockLayout.
	ErrBadClock = errors.New("timeconv: malformed time")
)

// LoadZone resolves an IANA zone name using the platform tzdata.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return loc, nil
}

// ToUTC combines a date and wall-clock literal in the named zone and returns
// the corresponding UTC instant.
//
// Local times that do not exist or occur twice around a DST transition resolve
// by time.Date's normalization: skipped times roll forward across the gap and
// ambiguous times take the first offset. That behavior is accepted as is.
func ToUTC(date, clock, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadClock, clock)
	}

	local := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// FromUTC renders a UTC instant as date and wall-clock literals in the named zone.
func FromUTC(t time.Time, zone string) (date, clock string, err error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", "", err
	}
	local := t.In(loc)
	return local.Format(DateLayout), local.Format(ClockLayout), nil
}

// NextQuarterHour rounds t forward to the next 15 minute mark. Instants already
// on a mark are returned unchanged apart from dropped seconds.
func NextQuarterHour(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	if rem := t.Minute() % 15; rem != 0 {
		t = t.Add(time.Duration(15-rem) * time.Minute)
	}
	return t
}
