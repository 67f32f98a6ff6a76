package employee

import (
	"time"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	// RegisteredAt bounds report evaluation: days before an employee
	// existed never count as absence.
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
