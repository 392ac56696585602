package position

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position struct {
	ID           string
	DepartmentID string
	Name         string
	BaseSalary   *decimal.Decimal
	Allowance    *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName *string
}
