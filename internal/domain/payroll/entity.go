package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending  PayrollStatus = "PENDING"
	PayrollStatusApproved PayrollStatus = "APPROVED"
)

// Payroll - Generated payroll for one employee and period
type Payroll struct {
	ID                  string
	EmployeeID          string
	Month               int
	Year                int
	BasicSalary         decimal.Decimal
	Allowances          decimal.Decimal
	Overtime            decimal.Decimal
	GrossSalary         decimal.Decimal
	Tax                 decimal.Decimal
	BPJSKesehatan       decimal.Decimal
	BPJSKetenagakerjaan decimal.Decimal
	OtherDeductions     decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetSalary           decimal.Decimal
	Status              PayrollStatus
	ApprovedBy          *string
	PaidAt              *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
	PositionName *string
}

const (
	MinYear = 2000
	MaxYear = 9999
)

// ValidPeriod reports whether month and year name a payroll period.
func ValidPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= MinYear && year <= MaxYear
}

// Contribution splits a social insurance premium.
type Contribution struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

// AttendanceCounts - inputs taken from the month's attendance rows
type AttendanceCounts struct {
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
	AbsentDays  int `json:"absent_days"`
}

// Breakdown is the full result of the gross-to-net calculation.
type Breakdown struct {
	Attendance          AttendanceCounts `json:"attendance"`
	BasicSalary         decimal.Decimal  `json:"basic_salary"`
	PositionAllowance   decimal.Decimal  `json:"position_allowance"`
	TransportAllowance  decimal.Decimal  `json:"transport_allowance"`
	MealAllowance       decimal.Decimal  `json:"meal_allowance"`
	Allowances          decimal.Decimal  `json:"allowances"`
	OvertimePay         decimal.Decimal  `json:"overtime_pay"`
	GrossSalary         decimal.Decimal  `json:"gross_salary"`
	Tax                 decimal.Decimal  `json:"tax"`
	BPJSKesehatan       Contribution     `json:"bpjs_kesehatan"`
	BPJSKetenagakerjaan Contribution     `json:"bpjs_ketenagakerjaan"`
	LateDeduction       decimal.Decimal  `json:"late_deduction"`
	AbsentDeduction     decimal.Decimal  `json:"absent_deduction"`
	OtherDeductions     decimal.Decimal  `json:"other_deductions"`
	TotalDeductions     decimal.Decimal  `json:"total_deductions"`
	NetSalary           decimal.Decimal  `json:"net_salary"`
}

// Summary - totals for one period
type Summary struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Count           int             `json:"count"`
	PendingCount    int             `json:"pending_count"`
	ApprovedCount   int             `json:"approved_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
