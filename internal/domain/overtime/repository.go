package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OvertimeRepository interface {
	Create(ctx context.Context, overtime Overtime) (Overtime, error)
	GetByID(ctx context.Context, id string) (Overtime, error)
	List(ctx context.Context, filter OvertimeFilter) ([]Overtime, int64, error)

	// Approve and Reject only touch PENDING rows; otherwise ErrNotPending.
	Approve(ctx context.Context, id string, rate, amount decimal.Decimal, approverID string, at time.Time) (Overtime, error)
	Reject(ctx context.Context, id string, approverID string, at time.Time) (Overtime, error)

	Delete(ctx context.Context, id string) error

	// ApprovedTotals sums approved rows with date in [from, to].
	ApprovedTotals(ctx context.Context, employeeID string, from, to time.Time) (Totals, error)
	Summary(ctx context.Context, filter OvertimeFilter) (Summary, error)
}
