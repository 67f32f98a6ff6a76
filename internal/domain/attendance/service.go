package attendance

import (
	"context"
)

// AttendanceService defines business logic for check-in/check-out and the
// live status view
type AttendanceService interface {
	// CheckIn records a new session start for the authenticated employee;
	// any session still open for the day is closed first
	CheckIn(ctx context.Context) (StatusResponse, error)

	// CheckOut closes the authenticated employee's open session
	CheckOut(ctx context.Context) (StatusResponse, error)

	// Status returns the authenticated employee's live day status
	Status(ctx context.Context) (StatusResponse, error)

	// StatusFor returns the live day status of a specific employee,
	// used by the realtime broadcast job and manager views
	StatusFor(ctx context.Context, employeeID string) (StatusResponse, error)
}
