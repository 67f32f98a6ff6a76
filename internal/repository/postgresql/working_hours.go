package postgresql

import (
	"context"
	"fmt"

	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type WorkingHoursRepositoryPostgreSQL struct {
	db *database.DB
}

func NewWorkingHoursRepository(db *database.DB) workinghours.Repository {
	return &WorkingHoursRepositoryPostgreSQL{db: db}
}

// Resolve implements workinghours.Provider. The table holds at most one
// row; an empty table means the system was never configured.
func (r *WorkingHoursRepositoryPostgreSQL) Resolve(ctx context.Context) (workinghours.WorkingHours, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT start_time, end_time, updated_at FROM working_hours LIMIT 1`

	var hours workinghours.WorkingHours
	err := querier.QueryRow(ctx, query).Scan(&hours.StartTime, &hours.EndTime, &hours.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return workinghours.WorkingHours{}, workinghours.ErrNotConfigured
		}
		return workinghours.WorkingHours{}, fmt.Errorf("failed to resolve working hours: %w", err)
	}

	return hours, nil
}

// Update implements workinghours.Repository.
func (r *WorkingHoursRepositoryPostgreSQL) Update(ctx context.Context, hours workinghours.WorkingHours) (workinghours.WorkingHours, error) {
	if err := hours.Validate(); err != nil {
		return workinghours.WorkingHours{}, err
	}

	querier := GetQuerier(ctx, r.db)

	// Single-row table keyed by a constant id
	query := `
		INSERT INTO working_hours (id, start_time, end_time, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    updated_at = NOW()
		RETURNING start_time, end_time, updated_at
	`
	var updated workinghours.WorkingHours
	err := querier.QueryRow(ctx, query, hours.StartTime, hours.EndTime).
		Scan(&updated.StartTime, &updated.EndTime, &updated.UpdatedAt)
	if err != nil {
		return workinghours.WorkingHours{}, fmt.Errorf("failed to update working hours: %w", err)
	}

	return updated, nil
}
