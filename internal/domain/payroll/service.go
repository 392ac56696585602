package payroll

import "context"

type PayrollService interface {
	// Generate computes and stores one employee's payroll for a period.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)
	// GenerateBulk runs Generate for every active employee. One failure does not
	// stop the others.
	GenerateBulk(ctx context.Context, req GenerateBulkRequest) (BulkResult, error)
	Approve(ctx context.Context, id string, approverID string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	Summary(ctx context.Context, month, year int) (Summary, error)
}
