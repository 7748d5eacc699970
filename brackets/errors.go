package brackets

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is joined into every configuration error.
	ErrInvalidConfig = errors.New("invalid tournament configuration")

	ErrGroupCountTooSmall        = errors.New("group count must be at least 1")
	ErrTeamCountTooSmall         = errors.New("team count must be at least 2")
	ErrTooManyGroups             = errors.New("group count exceeds team count")
	ErrTooManyKnockoutRounds     = errors.New("knockout rounds exceed what the team count supports")
	ErrNegativeKnockoutRounds    = errors.New("knockout rounds must not be negative")
	ErrUnknownClassificationMode = errors.New("unrecognized classification mode")

	// ErrInconsistentSchedule is joined into every consistency error.
	ErrInconsistentSchedule = errors.New("inconsistent schedule")

	ErrDuplicateMatchCode = errors.New("duplicate match code")
	ErrUnknownSlot        = errors.New("schedule references a slot missing from the registry")
	ErrUnknownMatchCode   = errors.New("schedule references an unknown match code")
)

func configError(base error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, base, fmt.Sprintf(format, args...))
}

func consistencyError(base error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrInconsistentSchedule, base, fmt.Sprintf(format, args...))
}
