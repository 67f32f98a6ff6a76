package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/etrackhq/etrack-backend-go/internal/config"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/middleware"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Report       ReportHandler
	WorkingHours WorkingHoursHandler
	Holiday      HolidayHandler
	Leave        LeaveHandler
	Realtime     RealtimeHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "etrack-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		// SSE stream authenticates itself with a query-string token
		r.Get("/realtime/stream", h.Realtime.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/status", h.Attendance.GetMyStatus)
				r.Post("/realtime-token", h.Attendance.RealtimeToken)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/status/{employeeID}", h.Attendance.GetStatus)
				})
			})

			r.Route("/working-hours", func(r chi.Router) {
				r.Get("/", h.WorkingHours.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/", h.WorkingHours.Update)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Holiday.Add)
					r.Delete("/{date}", h.Holiday.Remove)
				})
			})

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/weekly", h.Report.Weekly)
					r.Get("/monthly", h.Report.Monthly)
				})

				r.Post("/leave", h.Leave.SetOnLeave)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
