package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type HolidayRepositoryPostgreSQL struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &HolidayRepositoryPostgreSQL{db: db}
}

// ListDates implements holiday.Repository.
func (r *HolidayRepositoryPostgreSQL) ListDates(ctx context.Context) ([]time.Time, error) {
	querier := GetQuerier(ctx, r.db)

	rows, err := querier.Query(ctx, `SELECT date FROM holidays ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan holiday date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday dates: %w", err)
	}

	return dates, nil
}

// List implements holiday.Repository.
func (r *HolidayRepositoryPostgreSQL) List(ctx context.Context) ([]holiday.Holiday, error) {
	querier := GetQuerier(ctx, r.db)

	rows, err := querier.Query(ctx, `SELECT id, date, name, created_at FROM holidays ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

// Add implements holiday.Repository.
func (r *HolidayRepositoryPostgreSQL) Add(ctx context.Context, date time.Time, name string) (holiday.Holiday, error) {
	querier := GetQuerier(ctx, r.db)

	h := holiday.Holiday{
		ID:   uuid.New().String(),
		Date: date,
		Name: name,
	}

	query := `
		INSERT INTO holidays (id, date, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := querier.QueryRow(ctx, query, h.ID, h.Date, h.Name).Scan(&h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the date column
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to add holiday: %w", err)
	}

	return h, nil
}

// Remove implements holiday.Repository.
func (r *HolidayRepositoryPostgreSQL) Remove(ctx context.Context, date time.Time) error {
	querier := GetQuerier(ctx, r.db)

	_, err := querier.Exec(ctx, `DELETE FROM holidays WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to remove holiday: %w", err)
	}

	return nil
}
