package employee

import "context"

// EmployeeRepository defines data access for employees
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by email, used for login
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// ListAll returns every employee, used by reports and the realtime
	// broadcast job
	ListAll(ctx context.Context) ([]Employee, error)
}
