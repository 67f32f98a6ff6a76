package holiday

import (
	"context"
	"errors"
	"time"
)

var ErrHolidayExists = errors.New("holiday already exists for that date")

// Repository defines data access for the holiday exclusion list
type Repository interface {
	// ListDates returns all holiday dates. The calculator treats these as
	// non-working days regardless of weekday.
	ListDates(ctx context.Context) ([]time.Time, error)

	// List returns holidays with their names, for the admin view
	List(ctx context.Context) ([]Holiday, error)

	// Add registers a new holiday
	Add(ctx context.Context, date time.Time, name string) (Holiday, error)

	// Remove deletes the holiday on the given date
	Remove(ctx context.Context, date time.Time) error
}
