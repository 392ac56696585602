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

	"github.com/cmlabs-hris/hris-core-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-core-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-core-go/internal/service/attendance"
	debtService "github.com/cmlabs-hris/hris-core-go/internal/service/debt"
	employeeService "github.com/cmlabs-hris/hris-core-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/service/master"
	overtimeService "github.com/cmlabs-hris/hris-core-go/internal/service/overtime"
	payrollService "github.com/cmlabs-hris/hris-core-go/internal/service/payroll"
	shiftService "github.com/cmlabs-hris/hris-core-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(),
		database.WithPoolSize(cfg.Database.MaxConns, cfg.Database.MinConns),
		database.WithApplicationName("hris-core"),
	)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	branchRepo := postgresql.NewBranchRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	debtRepo := postgresql.NewDebtRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	masterSvc := master.NewMasterService(branchRepo, departmentRepo, positionRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, branchRepo, positionRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		branchRepo,
		shiftRepo,
		cfg.Attendance.DefaultTimezone,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, employeeRepo)
	debtSvc := debtService.NewDebtService(transactor, debtRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		transactor,
		payrollRepo,
		employeeRepo,
		positionRepo,
		attendanceRepo,
		payrollService.NewPolicy(cfg.Payroll),
		cfg.Payroll.BulkWorkers,
	)

	router := appHTTP.NewRouter(logger, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       cfg.SlogLevel(),
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Debt:       appHTTP.NewDebtHandler(debtSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
