package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/report"
	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/cache"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/validator"
	attendancesvc "github.com/etrackhq/etrack-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Saturday noon; the report week under test is Mon 2025-03-10 .. Sun 2025-03-16
var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

var testHours = workinghours.Static{
	StartTime: time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC),
	EndTime:   time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListBetweenDates(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) CloseOpenSessions(ctx context.Context, employeeID string, date time.Time, checkOut time.Time) error {
	return nil
}

func (f *fakeAttendanceRepo) IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAttendanceRepo) UpsertOnLeave(ctx context.Context, employeeID string, date time.Time) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	listCalls int
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	f.listCalls++
	return f.employees, nil
}

// failAfterHolidayRepo starts failing at the failFrom-th ListDates call,
// simulating a mid-batch infrastructure failure.
type failAfterHolidayRepo struct {
	calls    int
	failFrom int
}

func (f *failAfterHolidayRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	f.calls++
	if f.failFrom > 0 && f.calls >= f.failFrom {
		return nil, errors.New("holiday store unavailable")
	}
	return nil, nil
}

func (f *failAfterHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *failAfterHolidayRepo) Add(ctx context.Context, date time.Time, name string) (holiday.Holiday, error) {
	return holiday.Holiday{}, nil
}

func (f *failAfterHolidayRepo) Remove(ctx context.Context, date time.Time) error {
	return nil
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func instant(d, hour, minute int) *time.Time {
	t := time.Date(2025, 3, d, hour, minute, 0, 0, time.UTC)
	return &t
}

func closedSession(employeeID string, d, inHour, outHour int) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: employeeID,
		Date:       day(d),
		CheckIn:    instant(d, inHour, 0),
		CheckOut:   instant(d, outHour, 0),
		Status:     attendance.StatusCheckedOut,
	}
}

func newTestService(calcHolidays holiday.Repository) (*ReportServiceImpl, *fakeAttendanceRepo, *fakeEmployeeRepo) {
	attendanceRepo := &fakeAttendanceRepo{
		records: []attendance.Attendance{
			// Alice: full Monday, one hour late Tuesday, absent Wed-Fri
			closedSession("alice", 10, 8, 18),
			closedSession("alice", 11, 9, 18),
		},
	}
	employeeRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "alice", FullName: "Alice", RegisteredAt: day(1).AddDate(0, -2, 0)},
			// Bob joined Thursday; earlier days must not count against him
			{ID: "bob", FullName: "Bob", RegisteredAt: day(13)},
		},
	}

	calc := attendancesvc.NewCalculator(testHours, calcHolidays, time.UTC)

	svc := &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    &failAfterHolidayRepo{},
		workingHours:   testHours,
		calc:           calc,
		cache:          cache.New(),
		weeklyTTL:      time.Minute,
		monthlyTTL:     time.Minute,
		loc:            time.UTC,
		now:            func() time.Time { return testNow },
	}
	return svc, attendanceRepo, employeeRepo
}

func TestWeeklyReport(t *testing.T) {
	svc, _, _ := newTestService(&failAfterHolidayRepo{})
	ctx := context.Background()

	result, err := svc.WeeklyReport(ctx, report.WeeklyReportRequest{Year: 2025, Month: 3, Week: 2})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", result.PeriodStart)
	assert.Equal(t, "2025-03-16", result.PeriodEnd)
	require.Len(t, result.Rows, 2)

	// Alice: 10h Monday + 9h Tuesday; 1h late Tuesday plus three 10h
	// absent days (Wed, Thu, Fri)
	alice := result.Rows[0]
	assert.Equal(t, "Alice", alice.Employee)
	assert.Equal(t, "19:00", alice.TotalHours)
	assert.Equal(t, "31:00", alice.TotalLateness)
	assert.Equal(t, "09:30", alice.AvgDailyHours)
	assert.Equal(t, "2", alice.DaysWorked)
	assert.Equal(t, "4", alice.DaysLate)

	// Bob: no records, registered Thursday, so only Thu and Fri count
	bob := result.Rows[1]
	assert.Equal(t, "Bob", bob.Employee)
	assert.Equal(t, "00:00", bob.TotalHours)
	assert.Equal(t, "20:00", bob.TotalLateness)
	assert.Equal(t, "00:00", bob.AvgDailyHours)
	assert.Equal(t, "0", bob.DaysWorked)
	assert.Equal(t, "2", bob.DaysLate)
}

func TestWeeklyReport_ServedFromCache(t *testing.T) {
	svc, _, employeeRepo := newTestService(&failAfterHolidayRepo{})
	ctx := context.Background()
	req := report.WeeklyReportRequest{Year: 2025, Month: 3, Week: 2}

	first, err := svc.WeeklyReport(ctx, req)
	require.NoError(t, err)
	second, err := svc.WeeklyReport(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, employeeRepo.listCalls)
}

func TestWeeklyReport_FailedEmployeeGetsPlaceholderRow(t *testing.T) {
	// Alice's three absent-day evaluations consume calls 1-3 of the
	// calculator's holiday lookups; Bob's first fails.
	svc, _, _ := newTestService(&failAfterHolidayRepo{failFrom: 4})
	ctx := context.Background()

	result, err := svc.WeeklyReport(ctx, report.WeeklyReportRequest{Year: 2025, Month: 3, Week: 2})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "19:00", result.Rows[0].TotalHours)

	bob := result.Rows[1]
	assert.Equal(t, "Bob", bob.Employee)
	assert.Equal(t, report.NotAvailable, bob.TotalHours)
	assert.Equal(t, report.NotAvailable, bob.TotalLateness)
	assert.Equal(t, report.NotAvailable, bob.AvgDailyHours)
	assert.Equal(t, report.NotAvailable, bob.DaysWorked)
	assert.Equal(t, report.NotAvailable, bob.DaysLate)
}

func TestMonthlyReport_TruncatesAtToday(t *testing.T) {
	svc, _, _ := newTestService(&failAfterHolidayRepo{})
	ctx := context.Background()

	result, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", result.PeriodStart)
	assert.Equal(t, "2025-03-31", result.PeriodEnd)
	require.Len(t, result.Rows, 2)

	// Working days elapsed in March by Saturday the 15th: the 3rd-7th
	// and the 10th-14th. Alice worked two of them.
	alice := result.Rows[0]
	assert.Equal(t, "19:00", alice.TotalHours)
	assert.Equal(t, "2", alice.DaysWorked)
	// Eight absent days at 10h each, plus the late hour on the 11th
	assert.Equal(t, "81:00", alice.TotalLateness)
	assert.Equal(t, "9", alice.DaysLate)
}

func TestReportRequestValidation(t *testing.T) {
	svc, _, _ := newTestService(&failAfterHolidayRepo{})
	ctx := context.Background()

	_, err := svc.WeeklyReport(ctx, report.WeeklyReportRequest{Year: 2025, Month: 13, Week: 1})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = svc.MonthlyReport(ctx, report.MonthlyReportRequest{Year: 1999, Month: 3})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verrs))
}
