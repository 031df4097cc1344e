package scheduling

import "errors"

var (
	// ErrInvalidInterval is returned for a non-positive slot interval.
	// Failing fast here keeps a misconfigured tenant from looping the
	// generator forever.
	ErrInvalidInterval = errors.New("scheduling: slot interval must be positive")

	// ErrInvalidRule is returned for an open rule whose window is inverted.
	ErrInvalidRule = errors.New("scheduling: open time must be before close time")
)
