package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/domain/leave"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/timeutil"
	"github.com/etrackhq/etrack-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.Repository
	loc            *time.Location
}

func NewLeaveService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.Repository,
	loc *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		loc:            loc,
	}
}

// SetOnLeave implements leave.LeaveService. Every day in the range gets a
// marker, weekends and holidays included; the calculator ignores markers
// on non-working days anyway, and marking them keeps the range contiguous
// if the holiday list changes later.
func (s *LeaveServiceImpl) SetOnLeave(ctx context.Context, req leave.SetOnLeaveRequest) (leave.SetOnLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.SetOnLeaveResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.SetOnLeaveResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	holidays, err := s.holidayRepo.ListDates(ctx)
	if err != nil {
		return leave.SetOnLeaveResponse{}, err
	}

	daysMarked := 0
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if err := s.attendanceRepo.UpsertOnLeave(txCtx, req.EmployeeID, day); err != nil {
				return err
			}
			daysMarked++
		}
		return nil
	})
	if err != nil {
		return leave.SetOnLeaveResponse{}, err
	}

	slog.Info("Employee marked on leave",
		"employee_id", req.EmployeeID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"days_marked", daysMarked)

	return leave.SetOnLeaveResponse{
		EmployeeID:  req.EmployeeID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DaysMarked:  daysMarked,
		WorkingDays: timeutil.CountWorkingDays(start, end, holidays),
	}, nil
}
