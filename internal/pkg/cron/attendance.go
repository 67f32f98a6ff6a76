package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/sse"
)

// AttendanceJobs bundles the periodic attendance work: the realtime
// status broadcast and the end-of-day summary log.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	employeeRepo      employee.EmployeeRepository
	hub               *sse.Hub
	loc               *time.Location
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		employeeRepo:      employeeRepo,
		hub:               hub,
		loc:               loc,
	}
}

// Register wires the jobs into the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler, broadcastInterval time.Duration) {
	s.AddJob("realtime_attendance_broadcast", broadcastInterval, j.BroadcastStatuses)
	s.AddJob("daily_work_summary", 24*time.Hour, j.LogDailySummary)
}

// BroadcastStatuses pushes every employee's live status to their own SSE
// topic and to the managers topic. Publishing is skipped entirely when
// nobody is listening.
func (j *AttendanceJobs) BroadcastStatuses(ctx context.Context) error {
	if j.hub.TotalSubscribers() == 0 {
		return nil
	}

	employees, err := j.employeeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees for broadcast: %w", err)
	}

	for _, emp := range employees {
		status, err := j.attendanceService.StatusFor(ctx, emp.ID)
		if err != nil {
			slog.Error("Failed to compute status for broadcast", "employee_id", emp.ID, "error", err)
			continue
		}

		event := sse.Event{Event: "attendance_update", Data: status}
		j.hub.PublishToMany([]string{emp.ID, sse.ManagersTopic}, event)
	}

	return nil
}

// LogDailySummary records each employee's closing work duration for the
// day in the application log.
func (j *AttendanceJobs) LogDailySummary(ctx context.Context) error {
	employees, err := j.employeeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees for summary: %w", err)
	}

	for _, emp := range employees {
		status, err := j.attendanceService.StatusFor(ctx, emp.ID)
		if err != nil {
			slog.Error("Failed to compute daily summary", "employee_id", emp.ID, "error", err)
			continue
		}

		slog.Info("Daily work summary",
			"employee_id", emp.ID,
			"date", status.Date,
			"work_duration", status.WorkDuration,
			"lateness", status.Lateness,
			"status", status.Status)
	}

	return nil
}
