package holiday

import "time"

// Holiday is a non-working date excluded from lateness evaluation.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
