package workinghours

import "context"

// Provider supplies the current working-hours configuration. The engine
// depends on this interface rather than any global lookup so tests can
// inject a fixed window.
type Provider interface {
	// Resolve returns the configured window or ErrNotConfigured
	Resolve(ctx context.Context) (WorkingHours, error)
}

// Repository extends Provider with the admin write path.
type Repository interface {
	Provider

	// Update replaces the global working-hours row
	Update(ctx context.Context, hours WorkingHours) (WorkingHours, error)
}

// Static is a fixed-value Provider, used in tests and anywhere a resolved
// configuration is reused across many per-day evaluations.
type Static WorkingHours

func (s Static) Resolve(ctx context.Context) (WorkingHours, error) {
	return WorkingHours(s), nil
}
