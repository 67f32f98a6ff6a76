package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/sse"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/timeutil"
	"github.com/etrackhq/etrack-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	calc *Calculator
	hub  *sse.Hub
	loc  *time.Location
	now  func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calc *Calculator,
	hub *sse.Hub,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		calc:                 calc,
		hub:                  hub,
		loc:                  loc,
		now:                  time.Now,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	nowLocal := s.now().In(s.loc)

	working, err := s.calc.IsWorkingTime(ctx, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if !working {
		return attendance.StatusResponse{}, attendance.ErrOutsideWorkingTime
	}

	onLeave, err := s.AttendanceRepository.IsOnLeave(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if onLeave {
		return attendance.StatusResponse{}, attendance.ErrOnLeave
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// A forgotten check-out must not leave two sessions open, so any
		// open session is closed at the moment of the new check-in.
		if err := s.AttendanceRepository.CloseOpenSessions(txCtx, employeeID, nowLocal, nowLocal); err != nil {
			return fmt.Errorf("failed to close open sessions: %w", err)
		}

		_, err := s.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       nowLocal,
			CheckIn:    &nowLocal,
			Status:     attendance.StatusCheckedIn,
		})
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	return s.statusAndPublish(ctx, employeeID)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	nowLocal := s.now().In(s.loc)

	working, err := s.calc.IsWorkingTime(ctx, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if !working {
		return attendance.StatusResponse{}, attendance.ErrOutsideWorkingTime
	}

	onLeave, err := s.AttendanceRepository.IsOnLeave(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if onLeave {
		return attendance.StatusResponse{}, attendance.ErrOnLeave
	}

	open, err := s.AttendanceRepository.GetOpenSession(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return attendance.StatusResponse{}, attendance.ErrNotCheckedIn
	}

	open.CheckOut = &nowLocal
	open.Status = attendance.StatusCheckedOut
	if err := s.AttendanceRepository.Update(ctx, *open); err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.statusAndPublish(ctx, employeeID)
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	return s.StatusFor(ctx, employeeID)
}

// StatusFor implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StatusFor(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	nowLocal := s.now().In(s.loc)

	events, err := s.AttendanceRepository.ListByEmployeeAndDate(ctx, employeeID, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	lateness, err := s.calc.Lateness(ctx, events, nowLocal, true)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	workDuration, err := s.calc.WorkDuration(ctx, events, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	dayStatus, err := s.calc.DayStatus(ctx, events, nowLocal, nowLocal)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	resp := attendance.StatusResponse{
		EmployeeID:   employeeID,
		Date:         timeutil.DateKey(nowLocal),
		CheckIns:     formatInstants(events, func(e attendance.Attendance) *time.Time { return e.CheckIn }),
		CheckOuts:    formatInstants(events, func(e attendance.Attendance) *time.Time { return e.CheckOut }),
		Lateness:     timeutil.FormatHHMM(lateness),
		WorkDuration: timeutil.FormatHHMM(workDuration),
		Status:       dayStatus,
	}

	if emp, err := s.EmployeeRepository.GetByID(ctx, employeeID); err == nil {
		resp.EmployeeName = emp.FullName
	}

	return resp, nil
}

// statusAndPublish builds the live status view and fans it out to the
// employee's own stream and the manager dashboard.
func (s *AttendanceServiceImpl) statusAndPublish(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	resp, err := s.StatusFor(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	event := sse.Event{Topic: employeeID, Event: "attendance_update", Data: resp}
	s.hub.Publish(employeeID, event)
	s.hub.PublishToMany([]string{sse.ManagersTopic}, event)

	return resp, nil
}

func formatInstants(events []attendance.Attendance, pick func(attendance.Attendance) *time.Time) []string {
	var out []string
	for _, e := range attendance.SortByCheckIn(events) {
		if t := pick(e); t != nil {
			out = append(out, timeutil.FormatDateTime(t))
		}
	}
	if len(out) == 0 {
		return []string{"N/A"}
	}
	return out
}
