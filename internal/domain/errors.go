package domain

import "errors"

var (
	// ErrInvalidInterval is returned for a malformed time interval
	// (bad date/time format or start not strictly before end).
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrInvalidDuration is returned when a slot duration is not a positive
	// number of minutes.
	ErrInvalidDuration = errors.New("domain: slot duration must be positive")
)
