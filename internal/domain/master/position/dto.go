package position

import (
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PositionFilter struct {
	DepartmentID *string
}

type PositionResponse struct {
	ID             string           `json:"id"`
	DepartmentID   string           `json:"department_id"`
	DepartmentName *string          `json:"department_name,omitempty"`
	Name           string           `json:"name"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance      *decimal.Decimal `json:"allowance,omitempty"`
}

func ToResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:             p.ID,
		DepartmentID:   p.DepartmentID,
		DepartmentName: p.DepartmentName,
		Name:           p.Name,
		BaseSalary:     p.BaseSalary,
		Allowance:      p.Allowance,
	}
}

type CreatePositionRequest struct {
	DepartmentID string           `json:"department_id" validate:"required,uuid"`
	Name         string           `json:"name" validate:"max=100"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance    *decimal.Decimal `json:"allowance,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	validateAmounts(&errs, r.BaseSalary, r.Allowance)

	return errs.Err()
}

type UpdatePositionRequest struct {
	ID           string           `json:"id" validate:"required"`
	DepartmentID *string          `json:"department_id,omitempty" validate:"omitempty,uuid"`
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance    *decimal.Decimal `json:"allowance,omitempty"`
}

func (r *UpdatePositionRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	validateAmounts(&errs, r.BaseSalary, r.Allowance)

	return errs.Err()
}

func validateAmounts(errs *validator.ValidationErrors, baseSalary, allowance *decimal.Decimal) {
	if baseSalary != nil && baseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if allowance != nil && allowance.IsNegative() {
		errs.Add("allowance", "allowance must not be negative")
	}
}
