package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetActive(ctx context.Context) ([]Employee, error)
	// HasHistory reports whether attendance, leave or payroll rows reference the employee.
	HasHistory(ctx context.Context, id string) (bool, error)
}
