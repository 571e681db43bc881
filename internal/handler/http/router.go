package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ik-portal/hr-backend/internal/domain/user"
	"github.com/ik-portal/hr-backend/internal/handler/http/middleware"
	"github.com/ik-portal/hr-backend/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, logger *slog.Logger, allowedOrigins []string, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/salary", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/me", payrollHandler.ListMyPayrolls)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollViewAll))
					r.Get("/", payrollHandler.ListPayrolls)
					r.Get("/{id}", payrollHandler.GetPayroll)
				})

				r.With(middleware.RequirePermission(user.PermissionPayrollRun)).Post("/generate", payrollHandler.Generate)
				r.With(middleware.RequirePermission(user.PermissionPayrollRun)).Post("/preview", payrollHandler.Preview)
				r.With(middleware.RequirePermission(user.PermissionPayrollPay)).Post("/{id}/pay", payrollHandler.MarkPaid)
			})
		})
	})

	return r
}
