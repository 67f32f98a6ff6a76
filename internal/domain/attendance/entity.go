package attendance

import (
	"sort"
	"time"
)

// EventStatus is the closed set of per-day attendance states. It doubles
// as the status tag stored on individual records (on_leave, checked_in,
// checked_out, not_checked_in) and as the derived day status returned by
// the calculator (all six values).
type EventStatus string

const (
	StatusNotWorkingDay  EventStatus = "not_working_day"
	StatusNotWorkingHour EventStatus = "not_working_hour"
	StatusNotCheckedIn   EventStatus = "not_checked_in"
	StatusCheckedIn      EventStatus = "checked_in"
	StatusCheckedOut     EventStatus = "checked_out"
	StatusOnLeave        EventStatus = "on_leave"
)

// Valid reports whether s is one of the known status labels.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusNotWorkingDay, StatusNotWorkingHour, StatusNotCheckedIn,
		StatusCheckedIn, StatusCheckedOut, StatusOnLeave:
		return true
	}
	return false
}

// Attendance is one check-in/check-out session for an employee on a day.
// CheckIn nil means the record never started (e.g. an on_leave marker);
// CheckOut nil means the session is still open.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     EventStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for list/report views
	EmployeeName *string
}

// AnyOnLeave reports whether any record in the list carries on_leave.
// A single leave marker excuses the whole day.
func AnyOnLeave(events []Attendance) bool {
	for _, e := range events {
		if e.Status == StatusOnLeave {
			return true
		}
	}
	return false
}

// SortByCheckIn returns a copy of events ordered by check-in ascending,
// falling back to check-out when a record has no check-in. The sum over a
// fixed window does not depend on this order; it exists for determinism.
func SortByCheckIn(events []Attendance) []Attendance {
	sorted := make([]Attendance, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return eventKey(sorted[i]).Before(eventKey(sorted[j]))
	})
	return sorted
}

func eventKey(e Attendance) time.Time {
	if e.CheckIn != nil {
		return *e.CheckIn
	}
	if e.CheckOut != nil {
		return *e.CheckOut
	}
	return time.Time{}
}

// Latest returns the most recent record: check-out descending with open
// sessions sorting last, then check-in descending. A closed session's
// close time is treated as the more meaningful "last action" timestamp,
// so a record with a check-out always ranks ahead of one without.
func Latest(events []Attendance) (Attendance, bool) {
	if len(events) == 0 {
		return Attendance{}, false
	}

	best := events[0]
	for _, e := range events[1:] {
		if moreRecent(e, best) {
			best = e
		}
	}
	return best, true
}

func moreRecent(a, b Attendance) bool {
	switch {
	case a.CheckOut != nil && b.CheckOut == nil:
		return true
	case a.CheckOut == nil && b.CheckOut != nil:
		return false
	case a.CheckOut != nil && b.CheckOut != nil && !a.CheckOut.Equal(*b.CheckOut):
		return a.CheckOut.After(*b.CheckOut)
	}

	switch {
	case a.CheckIn != nil && b.CheckIn == nil:
		return true
	case a.CheckIn == nil || b.CheckIn == nil:
		return false
	}
	return a.CheckIn.After(*b.CheckIn)
}
