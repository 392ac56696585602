package payroll

import (
	"github.com/cmlabs-hris/hris-core-go/internal/config"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory constants of the simplified PPh 21 and BPJS rules.
var (
	// PTKP is the yearly non-taxable income of a single filer (TK/0).
	PTKP = decimal.NewFromInt(54000000)

	// BPJSSalaryCap caps the salary both BPJS programmes are computed on.
	BPJSSalaryCap = decimal.NewFromInt(12000000)

	bpjsKesehatanEmployee       = decimal.RequireFromString("0.01")
	bpjsKesehatanEmployer       = decimal.RequireFromString("0.04")
	bpjsKetenagakerjaanEmployee = decimal.RequireFromString("0.02")
	bpjsKetenagakerjaanEmployer = decimal.RequireFromString("0.0524")

	monthsPerYear = decimal.NewFromInt(12)
	daysPerMonth  = decimal.NewFromInt(30)
)

// PendingOvertimePay is what payroll generation passes as overtime pay.
// TODO: feed overtime.ApprovedTotals for the period once the overtime pay
// policy for payroll is agreed with HR.
var PendingOvertimePay = decimal.Zero

type taxBracket struct {
	upTo decimal.Decimal // zero means no upper bound
	rate decimal.Decimal
}

var taxBrackets = []taxBracket{
	{upTo: decimal.NewFromInt(60000000), rate: decimal.RequireFromString("0.05")},
	{upTo: decimal.NewFromInt(250000000), rate: decimal.RequireFromString("0.15")},
	{upTo: decimal.NewFromInt(500000000), rate: decimal.RequireFromString("0.25")},
	{rate: decimal.RequireFromString("0.30")},
}

// Policy holds the company-wide amounts used by Calculate.
type Policy struct {
	DefaultBasicSalary  decimal.Decimal
	TransportAllowance  decimal.Decimal
	MealAllowancePerDay decimal.Decimal
	LateDeductionPerDay decimal.Decimal
}

func NewPolicy(cfg config.PayrollConfig) Policy {
	return Policy{
		DefaultBasicSalary:  cfg.DefaultBasicSalary,
		TransportAllowance:  cfg.TransportAllowance,
		MealAllowancePerDay: cfg.MealAllowancePerDay,
		LateDeductionPerDay: cfg.LateDeductionPerDay,
	}
}

// DefaultPolicy returns the amounts used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		DefaultBasicSalary:  decimal.NewFromInt(5000000),
		TransportAllowance:  decimal.NewFromInt(500000),
		MealAllowancePerDay: decimal.NewFromInt(50000),
		LateDeductionPerDay: decimal.NewFromInt(50000),
	}
}

// CalculationInput is everything Calculate needs about one employee-month.
type CalculationInput struct {
	// Position amounts; nil falls back to the policy default and zero.
	BaseSalary        *decimal.Decimal
	PositionAllowance *decimal.Decimal
	Attendance        payroll.AttendanceCounts
	OvertimePay       decimal.Decimal
}

// Calculate runs the gross-to-net pipeline. It is pure: the same input and
// policy always produce the same breakdown.
func Calculate(in CalculationInput, policy Policy) payroll.Breakdown {
	b := payroll.Breakdown{Attendance: in.Attendance}

	b.BasicSalary = policy.DefaultBasicSalary
	if in.BaseSalary != nil && !in.BaseSalary.IsZero() {
		b.BasicSalary = *in.BaseSalary
	}
	b.PositionAllowance = decimal.Zero
	if in.PositionAllowance != nil {
		b.PositionAllowance = *in.PositionAllowance
	}
	b.TransportAllowance = policy.TransportAllowance
	b.MealAllowance = policy.MealAllowancePerDay.Mul(decimal.NewFromInt(int64(in.Attendance.PresentDays)))
	b.Allowances = b.PositionAllowance.Add(b.TransportAllowance).Add(b.MealAllowance)
	b.OvertimePay = in.OvertimePay

	b.GrossSalary = b.BasicSalary.Add(b.Allowances).Add(b.OvertimePay)

	b.Tax = MonthlyIncomeTax(b.GrossSalary)
	b.BPJSKesehatan = BPJSKesehatan(b.BasicSalary)
	b.BPJSKetenagakerjaan = BPJSKetenagakerjaan(b.BasicSalary)

	b.LateDeduction = policy.LateDeductionPerDay.Mul(decimal.NewFromInt(int64(in.Attendance.LateDays)))
	b.AbsentDeduction = b.BasicSalary.Mul(decimal.NewFromInt(int64(in.Attendance.AbsentDays))).Div(daysPerMonth).Round(2)
	b.OtherDeductions = b.LateDeduction.Add(b.AbsentDeduction)

	b.TotalDeductions = b.Tax.
		Add(b.BPJSKesehatan.Employee).
		Add(b.BPJSKetenagakerjaan.Employee).
		Add(b.OtherDeductions)
	b.NetSalary = b.GrossSalary.Sub(b.TotalDeductions)

	return b
}

// MonthlyIncomeTax annualizes gross, removes PTKP, applies the progressive
// brackets and returns the yearly tax divided by 12, rounded to the rupiah.
func MonthlyIncomeTax(gross decimal.Decimal) decimal.Decimal {
	taxable := gross.Mul(monthsPerYear).Sub(PTKP)
	if !taxable.IsPositive() {
		return decimal.Zero
	}

	yearly := decimal.Zero
	lower := decimal.Zero
	for _, bracket := range taxBrackets {
		upper := taxable
		if !bracket.upTo.IsZero() && bracket.upTo.LessThan(taxable) {
			upper = bracket.upTo
		}
		if upper.GreaterThan(lower) {
			yearly = yearly.Add(upper.Sub(lower).Mul(bracket.rate))
		}
		if bracket.upTo.IsZero() || !taxable.GreaterThan(bracket.upTo) {
			break
		}
		lower = bracket.upTo
	}

	return yearly.Div(monthsPerYear).Round(0)
}

// BPJSKesehatan is the health insurance premium on the capped basic salary.
func BPJSKesehatan(basic decimal.Decimal) payroll.Contribution {
	base := decimal.Min(basic, BPJSSalaryCap)
	return payroll.Contribution{
		Employee: base.Mul(bpjsKesehatanEmployee).Round(0),
		Employer: base.Mul(bpjsKesehatanEmployer).Round(0),
	}
}

// BPJSKetenagakerjaan is the employment insurance premium on the capped basic salary.
func BPJSKetenagakerjaan(basic decimal.Decimal) payroll.Contribution {
	base := decimal.Min(basic, BPJSSalaryCap)
	return payroll.Contribution{
		Employee: base.Mul(bpjsKetenagakerjaanEmployee).Round(0),
		Employer: base.Mul(bpjsKetenagakerjaanEmployer).Round(0),
	}
}
