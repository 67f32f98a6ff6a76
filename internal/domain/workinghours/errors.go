package workinghours

import "errors"

var (
	// ErrNotConfigured means no working-hours row exists. Attendance cannot
	// be evaluated without one, so callers must treat this as fatal rather
	// than guessing a default window.
	ErrNotConfigured = errors.New("working hours configuration is missing")

	ErrInvalidWindow = errors.New("working hours end time must be after start time")
)
