package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
type PayrollRepository interface {
	// Create inserts a payroll. A second payroll for the same employee and
	// period returns ErrPayrollAlreadyExists.
	Create(ctx context.Context, payroll Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)

	// Approve and Delete only touch PENDING rows; otherwise ErrPayrollNotPending.
	Approve(ctx context.Context, id string, approverID string, paidAt time.Time) (Payroll, error)
	Delete(ctx context.Context, id string) error

	Summary(ctx context.Context, month, year int) (Summary, error)
}
