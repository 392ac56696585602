package overtime

import (
	"context"
)

type OvertimeService interface {
	Request(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error)
	Approve(ctx context.Context, req ApproveOvertimeRequest) (OvertimeResponse, error)
	Reject(ctx context.Context, req RejectOvertimeRequest) (OvertimeResponse, error)
	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (OvertimeResponse, error)
	List(ctx context.Context, filter OvertimeFilter) (ListOvertimeResponse, error)
	Summary(ctx context.Context, filter OvertimeFilter) (Summary, error)
	ApprovedTotals(ctx context.Context, req ApprovedTotalsRequest) (Totals, error)
}
