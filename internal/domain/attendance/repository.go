package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Dates
// are calendar days in the configured local zone; instants are stored UTC.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// Update persists check-out and status changes to an existing record
	Update(ctx context.Context, record Attendance) error

	// ListByEmployeeAndDate returns all of an employee's records for one day
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)

	// ListBetweenDates returns every employee's records for the inclusive
	// date range, used by the report aggregator
	ListBetweenDates(ctx context.Context, start, end time.Time) ([]Attendance, error)

	// GetOpenSession returns the employee's open record (check-in without
	// check-out) for the day, if any
	GetOpenSession(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CloseOpenSessions stamps checkOut onto every open record of the day.
	// Called at check-in so at most one session is ever open per employee.
	CloseOpenSessions(ctx context.Context, employeeID string, date time.Time, checkOut time.Time) error

	// IsOnLeave reports whether the employee has an on_leave marker for the day
	IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// UpsertOnLeave creates or converts the day's record into an on_leave marker
	UpsertOnLeave(ctx context.Context, employeeID string, date time.Time) error
}
