package residency

import "errors"

var (
	// ErrInvalidSequence is returned when two consecutive events in date order have the same kind.
	ErrInvalidSequence = errors.New("invalid crossing sequence")
	// ErrInvariantViolation is returned when a resolved window does not pair up entries and exits.
	ErrInvariantViolation = errors.New("windowed sequence invariant violated")
)
