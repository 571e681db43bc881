package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/ik-portal/hr-backend/internal/config"
	appHTTP "github.com/ik-portal/hr-backend/internal/handler/http"
	"github.com/ik-portal/hr-backend/internal/pkg/cron"
	"github.com/ik-portal/hr-backend/internal/pkg/database"
	"github.com/ik-portal/hr-backend/internal/pkg/jwt"
	"github.com/ik-portal/hr-backend/internal/repository/postgresql"
	payrollService "github.com/ik-portal/hr-backend/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ik-portal-hr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	policy, err := payrollService.LoadPolicy(cfg.Payroll.PolicyFile)
	if err != nil {
		logger.Error("Error loading payroll policy", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(
		transactor,
		payrollRepo,
		employeeRepo,
		leaveRepo,
		attendanceRepo,
		policy,
		payrollService.WithLogger(logger),
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, logger, cfg.App.AllowedOrigins, payrollHandler)

	scheduler := cron.NewScheduler(logger)
	if cfg.Payroll.AutoRunDay > 0 {
		cron.NewPayrollJobs(payrollSvc, cfg.Payroll.AutoRunDay, logger).RegisterJobs(scheduler)
	}
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", "http://localhost"+port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	logger.Info("Server stopped")
}
