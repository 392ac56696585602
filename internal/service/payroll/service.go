package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	transactor     database.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	positionRepo   position.PositionRepository
	attendanceRepo attendance.AttendanceRepository
	policy         Policy
	bulkWorkers    int
	now            func() time.Time
}

func NewPayrollService(
	transactor database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	positionRepo position.PositionRepository,
	attendanceRepo attendance.AttendanceRepository,
	policy Policy,
	bulkWorkers int,
) payroll.PayrollService {
	if bulkWorkers < 1 {
		bulkWorkers = 1
	}
	return &PayrollServiceImpl{
		transactor:     transactor,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		positionRepo:   positionRepo,
		attendanceRepo: attendanceRepo,
		policy:         policy,
		bulkWorkers:    bulkWorkers,
		now:            time.Now,
	}
}

// ========== GENERATION ==========

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	var (
		created   payroll.Payroll
		breakdown payroll.Breakdown
	)
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.payrollRepo.ExistsForPeriod(txCtx, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return fmt.Errorf("failed to check existing payroll: %w", err)
		}
		if exists {
			return payroll.ErrPayrollAlreadyExists
		}

		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		input, err := s.calculationInput(txCtx, emp, req.Month, req.Year)
		if err != nil {
			return err
		}
		breakdown = Calculate(input, s.policy)

		// The unique (employee, month, year) index turns a concurrent duplicate
		// into ErrPayrollAlreadyExists here.
		created, err = s.payrollRepo.Create(txCtx, payroll.Payroll{
			EmployeeID:          emp.ID,
			Month:               req.Month,
			Year:                req.Year,
			BasicSalary:         breakdown.BasicSalary,
			Allowances:          breakdown.Allowances,
			Overtime:            breakdown.OvertimePay,
			GrossSalary:         breakdown.GrossSalary,
			Tax:                 breakdown.Tax,
			BPJSKesehatan:       breakdown.BPJSKesehatan.Employee,
			BPJSKetenagakerjaan: breakdown.BPJSKetenagakerjaan.Employee,
			OtherDeductions:     breakdown.OtherDeductions,
			TotalDeductions:     breakdown.TotalDeductions,
			NetSalary:           breakdown.NetSalary,
			Status:              payroll.PayrollStatusPending,
		})
		return err
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("payroll generated",
		"payroll_id", created.ID,
		"employee_id", created.EmployeeID,
		"month", created.Month,
		"year", created.Year,
		"net_salary", created.NetSalary.String(),
	)

	resp := payroll.ToResponse(created)
	resp.Breakdown = &breakdown
	return resp, nil
}

func (s *PayrollServiceImpl) calculationInput(ctx context.Context, emp employee.Employee, month, year int) (CalculationInput, error) {
	pos, err := s.positionRepo.GetByID(ctx, emp.PositionID)
	if err != nil {
		return CalculationInput{}, err
	}

	from, to := attendance.MonthRange(month, year)
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return CalculationInput{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	summary := attendance.Summarize(emp.ID, month, year, records)

	return CalculationInput{
		BaseSalary:        pos.BaseSalary,
		PositionAllowance: pos.Allowance,
		Attendance: payroll.AttendanceCounts{
			PresentDays: summary.PresentDays,
			LateDays:    summary.LateDays,
			AbsentDays:  summary.AbsentDays,
		},
		OvertimePay: PendingOvertimePay,
	}, nil
}

// GenerateBulk implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateBulk(ctx context.Context, req payroll.GenerateBulkRequest) (payroll.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkResult{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.BulkResult{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	// Each employee gets its own transaction; errors are collected, never
	// returned to the group, so one failure cannot cancel the rest.
	failures := make([]error, len(employees))
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(s.bulkWorkers)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			_, err := s.Generate(ctx, payroll.GeneratePayrollRequest{
				EmployeeID: emp.ID,
				Month:      req.Month,
				Year:       req.Year,
			})
			if err != nil {
				mu.Lock()
				failures[i] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result := payroll.BulkResult{Month: req.Month, Year: req.Year}
	for i, err := range failures {
		if err == nil {
			result.SuccessCount++
			continue
		}
		result.ErrorCount++
		result.Failures = append(result.Failures, payroll.BulkFailure{
			EmployeeID: employees[i].ID,
			Error:      err.Error(),
		})

		level := slog.LevelError
		if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "bulk payroll generation failed for employee",
			"employee_id", employees[i].ID,
			"month", req.Month,
			"year", req.Year,
			"error", err,
		)
	}

	slog.Info("bulk payroll generation finished",
		"month", req.Month,
		"year", req.Year,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)
	return result, nil
}

// ========== LIFECYCLE ==========

// Approve implements payroll.PayrollService.
func (s *PayrollServiceImpl) Approve(ctx context.Context, id string, approverID string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if record.Status != payroll.PayrollStatusPending {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotPending
	}

	approved, err := s.payrollRepo.Approve(ctx, record.ID, approverID, s.now().UTC())
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("payroll approved", "payroll_id", approved.ID, "approver_id", approverID)
	return payroll.ToResponse(approved), nil
}

// Delete implements payroll.PayrollService.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != payroll.PayrollStatusPending {
		return payroll.ErrPayrollNotPending
	}
	return s.payrollRepo.Delete(ctx, record.ID)
}

// ========== QUERIES ==========

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.ToResponse(r))
	}

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Payrolls:   responses,
	}, nil
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, month, year int) (payroll.Summary, error) {
	if !payroll.ValidPeriod(month, year) {
		return payroll.Summary{}, payroll.ErrInvalidPeriod
	}

	summary, err := s.payrollRepo.Summary(ctx, month, year)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return summary, nil
}
