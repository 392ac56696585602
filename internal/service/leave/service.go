package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/workdays"
)

type LeaveServiceImpl struct {
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	quotaCalculator  *QuotaCalculator
	now              func() time.Time
}

func NewLeaveService(leaveRequestRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		quotaCalculator:  NewQuotaCalculator(leaveRequestRepo),
		now:              time.Now,
	}
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	emp, err := l.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}
	return l.quotaCalculator.Balance(ctx, emp, year)
}

// CreateRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.Start.After(req.End) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := l.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// A range without working days is still recorded, with duration 0.
	duration := workdays.Count(req.Start, req.End)

	leaveType := leave.LeaveType(req.LeaveType)
	// Quota is charged against the year the leave starts in.
	if err := l.quotaCalculator.CheckQuota(ctx, emp, leaveType, req.Start.Year(), duration); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := l.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  leaveType,
		StartDate:  req.Start,
		EndDate:    req.End,
		Duration:   duration,
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave requested",
		"leave_request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"duration", created.Duration,
	)
	return leave.ToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.LeaveStatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.LeaveStatusRejected)
}

func (l *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequest, status leave.LeaveStatus) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.leaveRequestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrNotPending
	}

	updated, err := l.leaveRequestRepo.UpdateStatus(ctx, request.ID, status, &req.ApproverID, l.now().UTC(), req.Notes)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request reviewed",
		"leave_request_id", updated.ID,
		"status", updated.Status,
		"approver_id", req.ApproverID,
	)
	return leave.ToResponse(updated), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string, employeeID string) (leave.LeaveRequestResponse, error) {
	request, err := l.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrNotOwner
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrNotPending
	}

	updated, err := l.leaveRequestRepo.UpdateStatus(ctx, request.ID, leave.LeaveStatusCancelled, nil, l.now().UTC(), nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(updated), nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(request), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.leaveRequestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}
