package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/config"
	appHTTP "github.com/etrackhq/etrack-backend-go/internal/handler/http"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/cache"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/cron"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/database"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/jwt"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/sse"
	"github.com/etrackhq/etrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/etrackhq/etrack-backend-go/internal/service/attendance"
	authService "github.com/etrackhq/etrack-backend-go/internal/service/auth"
	leaveService "github.com/etrackhq/etrack-backend-go/internal/service/leave"
	reportService "github.com/etrackhq/etrack-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	workingHoursRepo := postgresql.NewWorkingHoursRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	reportCache := cache.New()

	calculator := attendanceService.NewCalculator(workingHoursRepo, holidayRepo, loc)

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, calculator, hub, loc)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	leaveSvc := leaveService.NewLeaveService(db, attendanceRepo, employeeRepo, holidayRepo, loc)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		employeeRepo,
		holidayRepo,
		workingHoursRepo,
		calculator,
		reportCache,
		cfg.Report.WeeklyCacheTTL,
		cfg.Report.MonthlyCacheTTL,
		loc,
	)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(attendanceSvc, employeeRepo, hub, loc)
	jobs.Register(scheduler, cfg.Report.BroadcastInterval)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc, jwtService),
		Report:       appHTTP.NewReportHandler(reportSvc),
		WorkingHours: appHTTP.NewWorkingHoursHandler(workingHoursRepo),
		Holiday:      appHTTP.NewHolidayHandler(holidayRepo, loc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Realtime:     appHTTP.NewRealtimeHandler(hub, jwtService),
	}
	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Starting server", "addr", addr, "env", cfg.App.Env, "timezone", cfg.App.Timezone)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
