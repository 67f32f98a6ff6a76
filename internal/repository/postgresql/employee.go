package postgresql

import (
	"context"
	"fmt"

	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepositoryPostgreSQL struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &EmployeeRepositoryPostgreSQL{db: db}
}

const employeeColumns = `
	id, full_name, email, password_hash, role, registered_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID,
		&emp.FullName,
		&emp.Email,
		&emp.PasswordHash,
		&emp.Role,
		&emp.RegisteredAt,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepositoryPostgreSQL) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	emp, err := scanEmployee(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *EmployeeRepositoryPostgreSQL) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`
	emp, err := scanEmployee(querier.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *EmployeeRepositoryPostgreSQL) ListAll(ctx context.Context) ([]employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name ASC`
	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
