package leave

import (
	"context"
)

type LeaveService interface {
	GetBalance(ctx context.Context, employeeID string, year int) (Balance, error)

	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id string, employeeID string) (LeaveRequestResponse, error)

	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
}
