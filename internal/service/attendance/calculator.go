package attendance

import (
	"context"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/timeutil"
)

// Calculator is the time-accounting engine: given one employee's records
// for one day and a "now" cursor, it derives presence, lateness and the
// day status against the configured working window. It holds no mutable
// state and is safe for concurrent use; every real-time view and report
// goes through it so the numbers agree everywhere.
type Calculator struct {
	workingHours workinghours.Provider
	holidays     holiday.Repository
	loc          *time.Location
}

func NewCalculator(workingHours workinghours.Provider, holidays holiday.Repository, loc *time.Location) *Calculator {
	return &Calculator{
		workingHours: workingHours,
		holidays:     holidays,
		loc:          loc,
	}
}

// evaluationWindow resolves the scheduled window for now's date and
// truncates its end at now, so future time is never counted as presence
// or absence. The returned end may precede the start when now is before
// the window opens; spans are clamped to zero wherever that matters.
func (c *Calculator) evaluationWindow(ctx context.Context, now time.Time) (time.Time, time.Time, error) {
	hours, err := c.workingHours.Resolve(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	scheduledStart, scheduledEnd := hours.WindowFor(now, c.loc)
	if now.Before(scheduledEnd) {
		scheduledEnd = now
	}
	return scheduledStart, scheduledEnd, nil
}

// TotalPresence sums each record's overlap with [scheduledStart,
// scheduledEnd]. Open sessions run until the window end; records entirely
// outside the window contribute nothing. Overlapping records are NOT
// merged: each contributes its own clamped span, which matches the data
// the write path produces (check-in closes any open session, so at most
// one session is open at a time).
func (c *Calculator) TotalPresence(events []attendance.Attendance, scheduledStart, scheduledEnd time.Time) time.Duration {
	var total time.Duration

	for _, e := range attendance.SortByCheckIn(events) {
		if e.Status == attendance.StatusOnLeave {
			continue
		}
		// A record that never started cannot contribute presence
		if e.CheckIn == nil {
			continue
		}

		actualStart := *e.CheckIn
		if actualStart.Before(scheduledStart) {
			actualStart = scheduledStart
		}

		actualEnd := scheduledEnd
		if e.CheckOut != nil && e.CheckOut.Before(scheduledEnd) {
			actualEnd = *e.CheckOut
		}

		// Entirely after the window ends
		if actualStart.After(scheduledEnd) {
			continue
		}
		// Entirely before the window begins
		if e.CheckOut != nil && e.CheckOut.Before(scheduledStart) {
			continue
		}

		if actualEnd.After(actualStart) {
			total += actualEnd.Sub(actualStart)
		}
	}

	return total
}

// Lateness computes the unaccounted-for portion of the scheduled window:
// elapsed scheduled time minus presence, floored at zero. On-leave days
// are fully excused. With no records at all, includeAbsence controls
// whether the elapsed window counts as lateness (a no-show) or the day is
// skipped; reports pass true, per-record aggregation passes false.
func (c *Calculator) Lateness(ctx context.Context, events []attendance.Attendance, now time.Time, includeAbsence bool) (time.Duration, error) {
	now = now.In(c.loc)

	scheduledStart, scheduledEnd, err := c.evaluationWindow(ctx, now)
	if err != nil {
		return 0, err
	}

	scheduledSpan := scheduledEnd.Sub(scheduledStart)
	if scheduledSpan < 0 {
		scheduledSpan = 0
	}

	if attendance.AnyOnLeave(events) {
		return 0, nil
	}

	if len(events) == 0 {
		if !includeAbsence {
			return 0, nil
		}
		holidays, err := c.holidays.ListDates(ctx)
		if err != nil {
			return 0, err
		}
		if timeutil.IsWorkingDay(now, holidays) && now.After(scheduledStart) {
			return scheduledSpan, nil
		}
		return 0, nil
	}

	presence := c.TotalPresence(events, scheduledStart, scheduledEnd)

	lateness := scheduledSpan - presence
	if lateness < 0 {
		lateness = 0
	}
	return lateness, nil
}

// WorkDuration is total presence within the evaluation window for now's
// date. Zero on leave days and when there are no records.
func (c *Calculator) WorkDuration(ctx context.Context, events []attendance.Attendance, now time.Time) (time.Duration, error) {
	now = now.In(c.loc)

	scheduledStart, scheduledEnd, err := c.evaluationWindow(ctx, now)
	if err != nil {
		return 0, err
	}

	if attendance.AnyOnLeave(events) || len(events) == 0 {
		return 0, nil
	}

	return c.TotalPresence(events, scheduledStart, scheduledEnd), nil
}

// DayStatus derives the six-way status label for a day. Evaluated fresh
// on every call from the same inputs the duration math uses, so the label
// and the numbers can never disagree.
func (c *Calculator) DayStatus(ctx context.Context, events []attendance.Attendance, now time.Time, day time.Time) (attendance.EventStatus, error) {
	now = now.In(c.loc)

	holidays, err := c.holidays.ListDates(ctx)
	if err != nil {
		return "", err
	}
	if !timeutil.IsWorkingDay(day, holidays) {
		return attendance.StatusNotWorkingDay, nil
	}

	hours, err := c.workingHours.Resolve(ctx)
	if err != nil {
		return "", err
	}
	if !hours.Contains(now, c.loc) {
		return attendance.StatusNotWorkingHour, nil
	}

	if attendance.AnyOnLeave(events) {
		return attendance.StatusOnLeave, nil
	}

	last, ok := attendance.Latest(events)
	if !ok {
		return attendance.StatusNotCheckedIn, nil
	}
	if last.CheckOut == nil {
		return attendance.StatusCheckedIn, nil
	}
	return attendance.StatusCheckedOut, nil
}

// IsWorkingTime reports whether t falls on a working day and inside the
// working window, the guard used by check-in and check-out.
func (c *Calculator) IsWorkingTime(ctx context.Context, t time.Time) (bool, error) {
	t = t.In(c.loc)

	holidays, err := c.holidays.ListDates(ctx)
	if err != nil {
		return false, err
	}
	if !timeutil.IsWorkingDay(t, holidays) {
		return false, nil
	}

	hours, err := c.workingHours.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return hours.Contains(t, c.loc), nil
}
