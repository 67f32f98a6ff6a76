package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttendanceRepositoryPostgreSQL struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &AttendanceRepositoryPostgreSQL{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status,
	a.created_at, a.updated_at, e.full_name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := querier.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) Update(ctx context.Context, record attendance.Attendance) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := querier.Exec(ctx, query, record.ID, record.CheckIn, record.CheckOut, record.Status)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		ORDER BY a.check_in ASC NULLS LAST
	`
	rows, err := querier.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListBetweenDates implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) ListBetweenDates(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.employee_id, a.date, a.check_in ASC NULLS LAST
	`
	rows, err := querier.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		  AND a.check_in IS NOT NULL AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`
	rec, err := scanAttendance(querier.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &rec, nil
}

// CloseOpenSessions implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) CloseOpenSessions(ctx context.Context, employeeID string, date time.Time, checkOut time.Time) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $3, status = $4, updated_at = NOW()
		WHERE employee_id = $1 AND date = $2
		  AND check_in IS NOT NULL AND check_out IS NULL
	`
	_, err := querier.Exec(ctx, query, employeeID, date, checkOut, attendance.StatusCheckedOut)
	if err != nil {
		return fmt.Errorf("failed to close open sessions: %w", err)
	}

	return nil
}

// IsOnLeave implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2 AND status = $3
		)
	`
	var onLeave bool
	err := querier.QueryRow(ctx, query, employeeID, date, attendance.StatusOnLeave).Scan(&onLeave)
	if err != nil {
		return false, fmt.Errorf("failed to check leave marker: %w", err)
	}

	return onLeave, nil
}

// UpsertOnLeave implements attendance.AttendanceRepository.
func (r *AttendanceRepositoryPostgreSQL) UpsertOnLeave(ctx context.Context, employeeID string, date time.Time) error {
	querier := GetQuerier(ctx, r.db)

	already, err := r.IsOnLeave(ctx, employeeID, date)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, NULL, NULL, $4)
	`
	_, err = querier.Exec(ctx, query, uuid.New().String(), employeeID, date, attendance.StatusOnLeave)
	if err != nil {
		return fmt.Errorf("failed to create leave marker: %w", err)
	}

	return nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
