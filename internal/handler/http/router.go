package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/middleware"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Report       ReportHandler
	Employee     EmployeeHandler
	Piket        PiketHandler
	Swap         SwapHandler
	Permit       PermitHandler
	Announcement AnnouncementHandler
	Dashboard    DashboardHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, uploadsPath string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi-nh"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	if uploadsPath != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsPath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/break-start", h.Attendance.BreakStart)
				r.Post("/break-end", h.Attendance.BreakEnd)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/permit", h.Attendance.Permit)
				r.Post("/resume", h.Attendance.Resume)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/history", h.Attendance.History)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/recap", h.Report.Recap)
				r.Get("/export", h.Report.Export)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/piket-schedules", func(r chi.Router) {
				r.Get("/", h.Piket.ListByMonth)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Piket.Upsert)
					r.Delete("/{id}", h.Piket.Delete)
				})
			})

			r.Route("/swap-requests", func(r chi.Router) {
				r.Post("/", h.Swap.Create)
				r.Get("/", h.Swap.List)
				r.Patch("/{id}", h.Swap.Respond)
			})

			r.Route("/permits", func(r chi.Router) {
				r.Post("/", h.Permit.Create)
				r.Get("/", h.Permit.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}", h.Permit.SetStatus)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.Announcement.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Announcement.Create)
					r.Delete("/{id}", h.Announcement.Delete)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/stats", h.Dashboard.Stats)
			})
		})
	})
	return r
}
