package report

import (
	"fmt"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/pkg/validator"
)

type WeeklyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Week  int `json:"week"`
}

func (r *WeeklyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Week < 1 || r.Week > 5 {
		errs = append(errs, validator.ValidationError{
			Field:   "week",
			Message: "week must be between 1 and 5",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NotAvailable marks every field of a row whose employee could not be
// evaluated. It is distinguishable from a legitimate "00:00" or "0".
const NotAvailable = "N/A"

// EmployeeRow is one employee's aggregate over the report range. Duration
// fields are HH:MM, count fields are decimal strings; all six data fields
// are NotAvailable when evaluation failed for that employee.
type EmployeeRow struct {
	Employee      string `json:"employee"`
	TotalHours    string `json:"total_hours"`
	TotalLateness string `json:"total_lateness"`
	AvgDailyHours string `json:"avg_daily_hours"`
	DaysWorked    string `json:"days_worked"`
	DaysLate      string `json:"days_late"`
}

type Report struct {
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	GeneratedAt string        `json:"generated_at"`
	Rows        []EmployeeRow `json:"rows"`
}
