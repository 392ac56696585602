package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus moves a PENDING request to status. Requests that are no longer
	// pending return ErrNotPending.
	UpdateStatus(ctx context.Context, id string, status LeaveStatus, actorID *string, at time.Time, notes *string) (LeaveRequest, error)

	// SumApprovedDuration totals the duration of approved requests of leaveType
	// whose start date falls in year.
	SumApprovedDuration(ctx context.Context, employeeID string, leaveType LeaveType, year int) (int, error)
}
