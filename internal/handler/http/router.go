package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Shift      ShiftHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Debt       DebtHandler
	Payroll    PayrollHandler
	Master     MasterHandler
	Employee   EmployeeHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

// NewLogger builds the JSON logger used by the request log and the services.
func NewLogger(out io.Writer, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-core"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func NewRouter(logger *slog.Logger, opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceSelf))
				r.Use(middleware.RequireEmployee)
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/{id}/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.GetMyAttendance)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
				r.Get("/", h.Attendance.List)
				r.Get("/summary", h.Attendance.MonthlySummary)
				r.Get("/{id}", h.Attendance.Get)
			})

			r.With(middleware.RequirePermission(user.PermissionAttendanceCorrect)).
				Put("/{id}", h.Attendance.Correct)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftView))
				r.Get("/", h.Shift.List)
				r.Get("/detect", h.Shift.Detect)
				r.Get("/{id}", h.Shift.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftManage))
				r.Post("/", h.Shift.Create)
				r.Put("/{id}", h.Shift.Update)
				r.Delete("/{id}", h.Shift.Delete)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveSelf))
				r.Get("/balance", h.Leave.GetBalance)
				r.Get("/{id}", h.Leave.GetRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)
					r.Post("/{id}/cancel", h.Leave.CancelRequest)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).
				Get("/", h.Leave.ListRequests)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
				r.Post("/{id}/approve", h.Leave.ApproveRequest)
				r.Post("/{id}/reject", h.Leave.RejectRequest)
			})
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeSelf))
				r.Use(middleware.RequireEmployee)
				r.Post("/", h.Overtime.Request)
				r.Get("/my", h.Overtime.GetMyOvertime)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeViewAll))
				r.Get("/", h.Overtime.List)
				r.Get("/summary", h.Overtime.Summary)
				r.Get("/approved-totals", h.Overtime.ApprovedTotals)
				r.Get("/{id}", h.Overtime.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeApprove))
				r.Post("/{id}/approve", h.Overtime.Approve)
				r.Post("/{id}/reject", h.Overtime.Reject)
				r.Delete("/{id}", h.Overtime.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionDebtManage))

			r.Route("/debtors", func(r chi.Router) {
				r.Get("/", h.Debt.ListDebtors)
				r.Post("/", h.Debt.CreateDebtor)
				r.Get("/{id}", h.Debt.GetDebtor)
				r.Delete("/{id}", h.Debt.DeleteDebtor)
			})

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", h.Debt.ListDebts)
				r.Post("/", h.Debt.CreateDebt)
				r.Get("/summary", h.Debt.Summary)
				r.Get("/{id}", h.Debt.GetDebt)
				r.Post("/{id}/cancel", h.Debt.CancelDebt)
				r.Get("/{id}/payments", h.Debt.ListPayments)
				r.Post("/{id}/payments", h.Debt.RecordPayment)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
			r.Get("/", h.Payroll.List)
			r.Get("/summary", h.Payroll.Summary)
			r.Post("/generate", h.Payroll.Generate)
			r.Post("/generate-bulk", h.Payroll.GenerateBulk)
			r.Get("/{id}", h.Payroll.Get)
			r.Post("/{id}/approve", h.Payroll.Approve)
			r.Delete("/{id}", h.Payroll.Delete)
		})

		r.Route("/branches", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListBranches)
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetBranch)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterManage))
				r.Post("/", h.Master.CreateBranch)
				r.Put("/{id}", h.Master.UpdateBranch)
				r.Delete("/{id}", h.Master.DeleteBranch)
			})
		})

		r.Route("/departments", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListDepartments)
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetDepartment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterManage))
				r.Post("/", h.Master.CreateDepartment)
				r.Put("/{id}", h.Master.UpdateDepartment)
				r.Delete("/{id}", h.Master.DeleteDepartment)
			})
		})

		r.Route("/positions", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListPositions)
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetPosition)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterManage))
				r.Post("/", h.Master.CreatePosition)
				r.Put("/{id}", h.Master.UpdatePosition)
				r.Delete("/{id}", h.Master.DeletePosition)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.RequireEmployee).Get("/me", h.Employee.GetMe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterView))
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterManage))
				r.Post("/", h.Employee.Create)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Delete)
			})
		})
	})
	return r
}
