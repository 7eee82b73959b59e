package application

import (
	"errors"
	"fmt"

	"github.com/example/serier/internal/persistence"
)

var (
	// ErrNotFound is returned when the addressed series or session does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrNoActiveDraft is returned when an action addresses a configuration
	// session that was never begun or has already ended.
	ErrNoActiveDraft = errors.New("application: no draft in progress")
	// ErrIncompleteDraft is returned when confirm is invoked before every
	// required field is set. The confirm affordance is only rendered on a
	// complete draft, so reaching this is a programming error, not user error.
	ErrIncompleteDraft = errors.New("application: draft is not complete")
	// ErrPastSchedule is returned when a draft's resolved start instant is not
	// strictly in the future. The draft is left untouched so the user can
	// correct and retry.
	ErrPastSchedule = errors.New("application: series would start in the past")
)

// ConfigurationError wraps a bad user-provided configuration value (unknown
// timezone, malformed literal, unknown menu value). Fatal for the single
// action; draft state is never changed by a failing input.
type ConfigurationError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configErr(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}

// ErrorKind maps errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoActiveDraft):
		return "no_active_draft"
	case errors.Is(err, ErrIncompleteDraft):
		return "incomplete_draft"
	case errors.Is(err, ErrPastSchedule):
		return "past_schedule"
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return "configuration"
	}
	return "unexpected"
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("persistence failure: %w", err)
}
