// Package recurrence expands a series start into its dated occurrences.
//
// Frequencies form a small closed set; each step is fixed-instant arithmetic
// so an occurrence keeps its UTC instant regardless of DST transitions in the
// organizer's zone. The every-weekday rule is the one place local calendars
// matter: whether an instant is a weekday is judged on the organizer's local
// date, not the UTC date.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Frequency represents the supported recurrence intervals.
type Frequency int

const (
	// FrequencyUnset indicates the user has not picked a frequency yet.
	FrequencyUnset Frequency = iota
	// FrequencyDaily repeats every calendar day.
	FrequencyDaily
	// FrequencyEveryWeekday repeats every Monday through Friday.
	FrequencyEveryWeekday
	// FrequencyWeekly repeats every 7 days.
	FrequencyWeekly
	// FrequencyBiweekly repeats every 14 days.
	FrequencyBiweekly
	// FrequencyEvery3Weeks repeats every 21 days.
	FrequencyEvery3Weeks
	// FrequencyMonthly28 approximates a month as a fixed 28 day step.
	FrequencyMonthly28
)

var (
	// ErrInvalidFrequency indicates the frequency is unset or out of range.
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")
	// ErrInvalidCount indicates a non-positive occurrence count; zero means "unset".
	ErrInvalidCount = errors.New("recurrence: occurrence count must be positive")
	// ErrWeekendStart indicates an every-weekday expansion was seeded on a
	// Saturday or Sunday. Callers must supply a weekday start; there is no
	// automatic shift.
	ErrWeekendStart = errors.New("recurrence: weekday series must start on a weekday")
)

var wireValues = map[Frequency]string{
	FrequencyDaily:        "every-day",
	FrequencyEveryWeekday: "every-weekday",
	FrequencyWeekly:       "every-week",
	FrequencyBiweekly:     "every-2-weeks",
	FrequencyEvery3Weeks:  "every-3-weeks",
	FrequencyMonthly28:    "every-month",
}

var labels = map[Frequency]string{
	FrequencyDaily:        "Every Day",
	FrequencyEveryWeekday: "Every Weekday",
	FrequencyWeekly:       "Every Week",
	FrequencyBiweekly:     "Every 2 Weeks",
	FrequencyEvery3Weeks:  "Every 3 Weeks",
	FrequencyMonthly28:    "Every Month",
}

// Value returns the select-menu wire value for the frequency.
func (f Frequency) Value() string {
	return wireValues[f]
}

// String returns the human readable label shown in menus and summaries.
func (f Frequency) String() string {
	if label, ok := labels[f]; ok {
		return label
	}
	return "Not Selected"
}

// ParseFrequency maps a select-menu wire value back to its Frequency.
func ParseFrequency(value string) (Frequency, error) {
	for freq, wire := range wireValues {
		if wire == value {
			return freq, nil
		}
	}
	return FrequencyUnset, fmt.Errorf("%w: %q", ErrInvalidFrequency, value)
}

// step returns the fixed interval for interval-based frequencies. The
// every-weekday rule has no fixed step and is handled separately.
func (f Frequency) step() (time.Duration, bool) {
	switch f {
	case FrequencyDaily:
		return day, true
	case FrequencyWeekly:
		return 7 * day, true
	case FrequencyBiweekly:
		return 14 * day, true
	case FrequencyEvery3Weeks:
		return 21 * day, true
	case FrequencyMonthly28:
		return 28 * day, true
	default:
		return 0, false
	}
}

// Expand produces exactly count UTC instants for the series, the first equal
// to start and the rest strictly increasing. loc is the organizer's zone and
// is consulted only for weekday classification; pass nil to classify in UTC.
func Expand(start time.Time, freq Frequency, count int, loc *time.Location) ([]time.Time, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if loc == nil {
		loc = time.UTC
	}

	if freq == FrequencyEveryWeekday {
		return expandWeekdays(start.UTC(), count, loc)
	}

	step, ok := freq.step()
	if !ok {
		return nil, ErrInvalidFrequency
	}

	occurrences := make([]time.Time, 0, count)
	current := start.UTC()
	for len(occurrences) < count {
		occurrences = append(occurrences, current)
		current = current.Add(step)
	}
	return occurrences, nil
}

func expandWeekdays(start time.Time, count int, loc *time.Location) ([]time.Time, error) {
	if isWeekend(start.In(loc).Weekday()) {
		return nil, ErrWeekendStart
	}

	occurrences := make([]time.Time, 0, count)
	current := start
	for len(occurrences) < count {
		if !isWeekend(current.In(loc).Weekday()) {
			occurrences = append(occurrences, current)
		}
		current = current.Add(day)
	}
	return occurrences, nil
}

// LastDate applies the step table count-1 times to a calendar date, producing
// the date of the final occurrence. It operates on dates only, so a midnight
// value in any fixed zone works; the result carries the input's location.
func LastDate(start time.Time, freq Frequency, count int) (time.Time, error) {
	if count <= 0 {
		return time.Time{}, ErrInvalidCount
	}

	if freq == FrequencyEveryWeekday {
		current := start
		for remaining := count - 1; remaining > 0; {
			current = current.AddDate(0, 0, 1)
			if !isWeekend(current.Weekday()) {
				remaining--
			}
		}
		return current, nil
	}

	step, ok := freq.step()
	if !ok {
		return time.Time{}, ErrInvalidFrequency
	}
	days := int(step/day) * (count - 1)
	return start.AddDate(0, 0, days), nil
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
