package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest - generate one payroll
type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	if !ValidPeriod(r.Month, r.Year) {
		return ErrInvalidPeriod
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateBulkRequest - generate payroll for every active employee
type GenerateBulkRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GenerateBulkRequest) Validate() error {
	if !ValidPeriod(r.Month, r.Year) {
		return ErrInvalidPeriod
	}
	return nil
}

// PayrollFilter - Filter for listing payrolls
type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
	Page       int
	Limit      int
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Status != nil {
		switch PayrollStatus(*f.Status) {
		case PayrollStatusPending, PayrollStatusApproved:
		default:
			errs.Add("status", "status must be one of: PENDING, APPROVED")
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type PayrollResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        *string         `json:"employee_name,omitempty"`
	EmployeeCode        *string         `json:"employee_code,omitempty"`
	PositionName        *string         `json:"position_name,omitempty"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	Allowances          decimal.Decimal `json:"allowances"`
	Overtime            decimal.Decimal `json:"overtime"`
	GrossSalary         decimal.Decimal `json:"gross_salary"`
	Tax                 decimal.Decimal `json:"tax"`
	BPJSKesehatan       decimal.Decimal `json:"bpjs_kesehatan"`
	BPJSKetenagakerjaan decimal.Decimal `json:"bpjs_ketenagakerjaan"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	Status              PayrollStatus   `json:"status"`
	ApprovedBy          *string         `json:"approved_by,omitempty"`
	PaidAt              *string         `json:"paid_at,omitempty"`
	Breakdown           *Breakdown      `json:"breakdown,omitempty"`
	CreatedAt           string          `json:"created_at"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}

// BulkFailure - one employee that could not be processed
type BulkFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type BulkResult struct {
	Month        int           `json:"month"`
	Year         int           `json:"year"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`
	Failures     []BulkFailure `json:"failures,omitempty"`
}

func ToResponse(p Payroll) PayrollResponse {
	var paidAt *string
	if p.PaidAt != nil {
		s := p.PaidAt.Format(time.RFC3339)
		paidAt = &s
	}
	return PayrollResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		EmployeeName:        p.EmployeeName,
		EmployeeCode:        p.EmployeeCode,
		PositionName:        p.PositionName,
		Month:               p.Month,
		Year:                p.Year,
		BasicSalary:         p.BasicSalary,
		Allowances:          p.Allowances,
		Overtime:            p.Overtime,
		GrossSalary:         p.GrossSalary,
		Tax:                 p.Tax,
		BPJSKesehatan:       p.BPJSKesehatan,
		BPJSKetenagakerjaan: p.BPJSKetenagakerjaan,
		OtherDeductions:     p.OtherDeductions,
		TotalDeductions:     p.TotalDeductions,
		NetSalary:           p.NetSalary,
		Status:              p.Status,
		ApprovedBy:          p.ApprovedBy,
		PaidAt:              paidAt,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
	}
}
