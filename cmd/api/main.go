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

	"github.com/Rimhamzeh/Attendance-Management-System/internal/config"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/fixtures"
	appHTTP "github.com/Rimhamzeh/Attendance-Management-System/internal/handler/http"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/cron"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/jwt"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/repository/postgresql"
	attendanceService "github.com/Rimhamzeh/Attendance-Management-System/internal/service/attendance"
	serviceAuth "github.com/Rimhamzeh/Attendance-Management-System/internal/service/auth"
	employeeService "github.com/Rimhamzeh/Attendance-Management-System/internal/service/employee"
	reportService "github.com/Rimhamzeh/Attendance-Management-System/internal/service/report"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)

	if _, err := fixtures.SeedAdmin(ctx, adminRepo, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := attendanceService.NewHoursCalculator(cfg.Attendance.StandardWorkHours, cfg.Attendance.BreakAllowanceMinutes)

	authService := serviceAuth.NewAuthService(adminRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, attendanceRepo, breakRepo)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, breakRepo, employeeRepo, calculator)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceRepo, breakRepo, reportService.NewAggregator(calculator))

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, JWTService, cfg.Attendance.DailyRowsInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
