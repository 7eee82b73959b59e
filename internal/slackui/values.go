package slackui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Value prefixes of interactive elements. Picker options and per-session
// buttons carry the persisted identity of what they act on, so interaction
// handling needs no memory of which message the user is looking at.
const (
	seriesIDPrefix    = "series-id-"
	sessionIDPrefix   = "session-id-"
	timePrefix        = "time-"
	numSessionsPrefix = "numsessions-"
)

// FromHelpValue marks the create button of the help surface, so the menu it
// opens knows to restore help when cancelled.
const FromHelpValue = "from_help_message"

var errBadValue = errors.New("slackui: malformed element value")

func seriesIDValue(id string) string  { return seriesIDPrefix + id }
func sessionIDValue(id string) string { return sessionIDPrefix + id }

// ParseSeriesIDValue extracts the series ID from a picker option or button
// value.
func ParseSeriesIDValue(value string) (string, error) {
	id, ok := strings.CutPrefix(value, seriesIDPrefix)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %q", errBadValue, value)
	}
	return id, nil
}

// ParseSessionIDValue extracts the session ID from a per-session button
// value.
func ParseSessionIDValue(value string) (string, error) {
	id, ok := strings.CutPrefix(value, sessionIDPrefix)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %q", errBadValue, value)
	}
	return id, nil
}

// ParseTimeValue converts a time option value such as "time-1530" into the
// "15:04" clock literal the draft stores.
func ParseTimeValue(value string) (string, error) {
	digits, ok := strings.CutPrefix(value, timePrefix)
	if !ok || len(digits) != 4 {
		return "", fmt.Errorf("%w: %q", errBadValue, value)
	}
	return digits[:2] + ":" + digits[2:], nil
}

// ParseNumSessionsValue converts a count option value such as
// "numsessions-5" into its integer.
func ParseNumSessionsValue(value string) (int, error) {
	digits, ok := strings.CutPrefix(value, numSessionsPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errBadValue, value)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadValue, value)
	}
	return n, nil
}
