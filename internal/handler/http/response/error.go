package response

import (
	"errors"
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/auth"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideWorkingTime):
		Forbidden(w, "Outside of working time")
	case errors.Is(err, attendance.ErrOnLeave):
		Forbidden(w, "Employee is on leave today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in to close", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Working-hours configuration errors
	case errors.Is(err, workinghours.ErrNotConfigured):
		UnprocessableEntity(w, "Working hours are not configured")
	case errors.Is(err, workinghours.ErrInvalidWindow):
		BadRequest(w, "Working hours start must be before end", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for that date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
