package workinghours

import (
	"time"
)

// WorkingHours is the single global working-window configuration. Only
// the wall-clock components of StartTime and EndTime are meaningful; the
// date parts are ignored.
type WorkingHours struct {
	StartTime time.Time
	EndTime   time.Time
	UpdatedAt time.Time
}

// Validate checks the start < end invariant.
func (w WorkingHours) Validate() error {
	start := w.StartTime.Hour()*60 + w.StartTime.Minute()
	end := w.EndTime.Hour()*60 + w.EndTime.Minute()
	if start >= end {
		return ErrInvalidWindow
	}
	return nil
}

// WindowFor resolves the configured times-of-day into concrete start/end
// instants for the given calendar day in loc.
func (w WorkingHours) WindowFor(day time.Time, loc *time.Location) (time.Time, time.Time) {
	day = day.In(loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), w.StartTime.Hour(), w.StartTime.Minute(), 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), w.EndTime.Hour(), w.EndTime.Minute(), 0, 0, loc)
	return start, end
}

// Contains reports whether t falls inside the working window of its own
// day, boundaries included.
func (w WorkingHours) Contains(t time.Time, loc *time.Location) bool {
	start, end := w.WindowFor(t, loc)
	return !t.Before(start) && !t.After(end)
}
