package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/report"
	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/cache"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/timeutil"
	attendancesvc "github.com/etrackhq/etrack-backend-go/internal/service/attendance"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.Repository
	workingHours   workinghours.Provider
	calc           *attendancesvc.Calculator
	cache          *cache.Cache
	weeklyTTL      time.Duration
	monthlyTTL     time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.Repository,
	workingHours workinghours.Provider,
	calc *attendancesvc.Calculator,
	reportCache *cache.Cache,
	weeklyTTL time.Duration,
	monthlyTTL time.Duration,
	loc *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		workingHours:   workingHours,
		calc:           calc,
		cache:          reportCache,
		weeklyTTL:      weeklyTTL,
		monthlyTTL:     monthlyTTL,
		loc:            loc,
		now:            time.Now,
	}
}

// WeeklyReport implements report.ReportService.
func (s *ReportServiceImpl) WeeklyReport(ctx context.Context, req report.WeeklyReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	cacheKey := fmt.Sprintf("weekly_report_%d_%d_%d", req.Year, req.Month, req.Week)
	if cached, ok := s.cache.Get(cacheKey); ok {
		slog.Info("Serving weekly report from cache", "key", cacheKey)
		return cached.(report.Report), nil
	}

	start, end := timeutil.WeekBounds(req.Year, time.Month(req.Month), req.Week, s.loc)

	result, err := s.generate(ctx, start, end)
	if err != nil {
		return report.Report{}, err
	}

	s.cache.Set(cacheKey, result, s.weeklyTTL)
	return result, nil
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	cacheKey := fmt.Sprintf("monthly_report_%d_%d", req.Year, req.Month)
	if cached, ok := s.cache.Get(cacheKey); ok {
		slog.Info("Serving monthly report from cache", "key", cacheKey)
		return cached.(report.Report), nil
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, -1)

	result, err := s.generate(ctx, start, end)
	if err != nil {
		return report.Report{}, err
	}

	s.cache.Set(cacheKey, result, s.monthlyTTL)
	return result, nil
}

// generate folds per-day lateness/presence into one row per employee for
// the inclusive date range [start, end]. Days after today are never
// evaluated; past days are evaluated as observed at their scheduled end.
// A failure for one employee yields a placeholder row, not a failed batch.
func (s *ReportServiceImpl) generate(ctx context.Context, start, end time.Time) (report.Report, error) {
	nowLocal := s.now().In(s.loc)

	hours, err := s.workingHours.Resolve(ctx)
	if err != nil {
		return report.Report{}, err
	}
	holidays, err := s.holidayRepo.ListDates(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	rangeEnd := end
	if rangeEnd.After(nowLocal) {
		rangeEnd = nowLocal
	}

	workingDays := timeutil.WorkingDaysBetween(start, rangeEnd, holidays)

	records, err := s.attendanceRepo.ListBetweenDates(ctx, start, end)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to list employees: %w", err)
	}

	byEmployee := make(map[string]map[string][]attendance.Attendance)
	for _, rec := range records {
		key := timeutil.DateKey(rec.Date.In(s.loc))
		if byEmployee[rec.EmployeeID] == nil {
			byEmployee[rec.EmployeeID] = make(map[string][]attendance.Attendance)
		}
		byEmployee[rec.EmployeeID][key] = append(byEmployee[rec.EmployeeID][key], rec)
	}

	// Past days are evaluated as if observed at end-of-day; only today
	// uses the live clock.
	asOf := func(day time.Time) time.Time {
		if timeutil.SameDate(day, nowLocal) {
			return nowLocal
		}
		_, scheduledEnd := hours.WindowFor(day, s.loc)
		return scheduledEnd
	}

	rows := make([]report.EmployeeRow, 0, len(employees))
	for _, emp := range employees {
		row, err := s.employeeRow(ctx, emp, byEmployee[emp.ID], workingDays, asOf, nowLocal)
		if err != nil {
			slog.Error("Failed to build report row", "employee_id", emp.ID, "error", err)
			rows = append(rows, placeholderRow(emp.FullName))
			continue
		}
		rows = append(rows, row)
	}

	return report.Report{
		PeriodStart: timeutil.DateKey(start),
		PeriodEnd:   timeutil.DateKey(end),
		GeneratedAt: nowLocal.Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

func (s *ReportServiceImpl) employeeRow(
	ctx context.Context,
	emp employee.Employee,
	byDate map[string][]attendance.Attendance,
	workingDays []time.Time,
	asOf func(time.Time) time.Time,
	today time.Time,
) (report.EmployeeRow, error) {
	var totalWork, totalLateness time.Duration
	daysWorked := make(map[string]struct{})
	daysLate := make(map[string]struct{})

	registered := emp.RegisteredAt.In(s.loc)

	countable := func(day time.Time) bool {
		if day.After(today) && !timeutil.SameDate(day, today) {
			return false
		}
		if day.Before(registered) && !timeutil.SameDate(day, registered) {
			return false
		}
		return true
	}

	// Days with at least one record
	for key, events := range byDate {
		day := events[0].Date.In(s.loc)
		if !countable(day) {
			continue
		}

		evalAt := asOf(day)
		lateness, err := s.calc.Lateness(ctx, events, evalAt, true)
		if err != nil {
			return report.EmployeeRow{}, err
		}
		work, err := s.calc.WorkDuration(ctx, events, evalAt)
		if err != nil {
			return report.EmployeeRow{}, err
		}

		totalLateness += lateness
		totalWork += work
		daysWorked[key] = struct{}{}
		if lateness > 0 {
			daysLate[key] = struct{}{}
		}
	}

	// Working days with no record at all still accrue lateness: the whole
	// elapsed window counts because the employee never arrived.
	for _, day := range workingDays {
		key := timeutil.DateKey(day)
		if _, ok := daysWorked[key]; ok {
			continue
		}
		if !countable(day) {
			continue
		}

		lateness, err := s.calc.Lateness(ctx, nil, asOf(day), true)
		if err != nil {
			return report.EmployeeRow{}, err
		}
		totalLateness += lateness
		if lateness > 0 {
			daysLate[key] = struct{}{}
		}
	}

	avg := time.Duration(0)
	if len(daysWorked) > 0 {
		avg = totalWork / time.Duration(len(daysWorked))
	}

	return report.EmployeeRow{
		Employee:      emp.FullName,
		TotalHours:    timeutil.FormatHHMM(totalWork),
		TotalLateness: timeutil.FormatHHMM(totalLateness),
		AvgDailyHours: timeutil.FormatHHMM(avg),
		DaysWorked:    strconv.Itoa(len(daysWorked)),
		DaysLate:      strconv.Itoa(len(daysLate)),
	}, nil
}

func placeholderRow(name string) report.EmployeeRow {
	return report.EmployeeRow{
		Employee:      name,
		TotalHours:    report.NotAvailable,
		TotalLateness: report.NotAvailable,
		AvgDailyHours: report.NotAvailable,
		DaysWorked:    report.NotAvailable,
		DaysLate:      report.NotAvailable,
	}
}
