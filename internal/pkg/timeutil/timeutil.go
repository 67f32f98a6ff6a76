// Package timeutil holds the calendar helpers shared by the attendance
// calculator and the report aggregator. All functions are pure.
package timeutil

import (
	"fmt"
	"time"
)

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey renders a day as its YYYY-MM-DD form, the canonical key used
// for grouping attendance records and holiday lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsWorkingDay reports whether day is a Monday-Friday date that is not in
// the holiday exclusion list.
func IsWorkingDay(day time.Time, holidays []time.Time) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	for _, h := range holidays {
		if SameDate(day, h) {
			return false
		}
	}
	return true
}

// CountWorkingDays counts working days in the inclusive range [start, end].
func CountWorkingDays(start, end time.Time, holidays []time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}

// WorkingDaysBetween returns the working days of the inclusive range
// [start, end], in order. A range that ends before it starts yields nil.
func WorkingDaysBetween(start, end time.Time, holidays []time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			days = append(days, d)
		}
	}
	return days
}

// WeekBounds resolves week N of a month to its Monday start and Sunday end.
// Week 1 starts on the first Monday on or after the first of the month.
func WeekBounds(year int, month time.Month, week int, loc *time.Location) (time.Time, time.Time) {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(time.Monday) - int(firstOfMonth.Weekday()) + 7) % 7
	start := firstOfMonth.AddDate(0, 0, offset+(week-1)*7)
	return start, start.AddDate(0, 0, 6)
}

// FormatHHMM renders a cumulative duration as zero-padded HH:MM, truncating
// to whole minutes. Hours may exceed 24; this is a duration, not a clock time.
func FormatHHMM(d time.Duration) string {
	totalMinutes := int(d.Seconds() / 60)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatDateTime renders an optional instant for display, with "N/A" for nil.
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04")
}
