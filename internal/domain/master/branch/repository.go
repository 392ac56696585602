package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Update(ctx context.Context, branch Branch) (Branch, error)
	Delete(ctx context.Context, id string) error
	// GetByEmployeeID returns the branch the employee is assigned to.
	GetByEmployeeID(ctx context.Context, employeeID string) (Branch, error)
	CountEmployees(ctx context.Context, id string) (int64, error)
}
