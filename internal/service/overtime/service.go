package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/overtime"
)

type OvertimeServiceImpl struct {
	overtimeRepo overtime.OvertimeRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewOvertimeService(overtimeRepo overtime.OvertimeRepository, employeeRepo employee.EmployeeRepository) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		overtimeRepo: overtimeRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Request implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Request(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if !req.End.After(req.Start) {
		return overtime.OvertimeResponse{}, overtime.ErrInvalidTimeRange
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	created, err := s.overtimeRepo.Create(ctx, overtime.Overtime{
		EmployeeID: req.EmployeeID,
		Date:       req.Day,
		StartTime:  req.Start.UTC(),
		EndTime:    req.End.UTC(),
		Duration:   overtime.DurationHours(req.Start, req.End),
		Reason:     req.Reason,
		Status:     overtime.OvertimeStatusPending,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	slog.Info("overtime requested",
		"overtime_id", created.ID,
		"employee_id", created.EmployeeID,
		"hours", created.Duration.String(),
	)
	return overtime.ToResponse(created), nil
}

// Approve implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, req overtime.ApproveOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if !req.Rate.IsPositive() {
		return overtime.OvertimeResponse{}, overtime.ErrInvalidRate
	}

	record, err := s.overtimeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if record.Status != overtime.OvertimeStatusPending {
		return overtime.OvertimeResponse{}, overtime.ErrNotPending
	}

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	// An employee without an hourly rate is approved with zero pay.
	amount := overtime.Pay(record.Duration, emp.HourlyRateOrZero(), req.Rate)

	approved, err := s.overtimeRepo.Approve(ctx, record.ID, req.Rate, amount, req.ApproverID, s.now().UTC())
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	slog.Info("overtime approved",
		"overtime_id", approved.ID,
		"approver_id", req.ApproverID,
		"amount", amount.String(),
	)
	return overtime.ToResponse(approved), nil
}

// Reject implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Reject(ctx context.Context, req overtime.RejectOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	record, err := s.overtimeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if record.Status != overtime.OvertimeStatusPending {
		return overtime.OvertimeResponse{}, overtime.ErrNotPending
	}

	rejected, err := s.overtimeRepo.Reject(ctx, record.ID, req.ApproverID, s.now().UTC())
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return overtime.ToResponse(rejected), nil
}

// Delete implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == overtime.OvertimeStatusApproved {
		return overtime.ErrOvertimeApproved
	}

	if err := s.overtimeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete overtime request: %w", err)
	}
	return nil
}

// Get implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	record, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return overtime.ToResponse(record), nil
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, filter overtime.OvertimeFilter) (overtime.ListOvertimeResponse, error) {
	if err := filter.Validate(); err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	records, total, err := s.overtimeRepo.List(ctx, filter)
	if err != nil {
		return overtime.ListOvertimeResponse{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	responses := make([]overtime.OvertimeResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, overtime.ToResponse(r))
	}

	return overtime.ListOvertimeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Overtimes:  responses,
	}, nil
}

// Summary implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Summary(ctx context.Context, filter overtime.OvertimeFilter) (overtime.Summary, error) {
	if err := filter.Validate(); err != nil {
		return overtime.Summary{}, err
	}

	summary, err := s.overtimeRepo.Summary(ctx, filter)
	if err != nil {
		return overtime.Summary{}, fmt.Errorf("failed to summarize overtime: %w", err)
	}
	return summary, nil
}

// ApprovedTotals implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ApprovedTotals(ctx context.Context, req overtime.ApprovedTotalsRequest) (overtime.Totals, error) {
	if err := req.Validate(); err != nil {
		return overtime.Totals{}, err
	}

	totals, err := s.overtimeRepo.ApprovedTotals(ctx, req.EmployeeID, req.FromDate, req.ToDate)
	if err != nil {
		return overtime.Totals{}, fmt.Errorf("failed to total approved overtime: %w", err)
	}
	return totals, nil
}
