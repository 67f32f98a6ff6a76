package report

import "context"

// ReportService aggregates per-day lateness and presence across a date
// range for every employee
type ReportService interface {
	// WeeklyReport aggregates week N of a month (Monday through Sunday)
	WeeklyReport(ctx context.Context, req WeeklyReportRequest) (Report, error)

	// MonthlyReport aggregates a calendar month up to today
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (Report, error)
}
