package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type OvertimeStatus string

const (
	OvertimeStatusPending  OvertimeStatus = "PENDING"
	OvertimeStatusApproved OvertimeStatus = "APPROVED"
	OvertimeStatusRejected OvertimeStatus = "REJECTED"
)

type Overtime struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	Duration   decimal.Decimal // hours
	Reason     string
	Status     OvertimeStatus
	Rate       *decimal.Decimal // multiplier, set on approval
	Amount     *decimal.Decimal // pay, set on approval
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

var millisPerHour = decimal.NewFromInt(3600000)

// DurationHours converts the span between start and end to hours.
func DurationHours(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(end.Sub(start).Milliseconds()).Div(millisPerHour)
}

// Pay computes duration x hourlyRate x rate.
func Pay(duration, hourlyRate, rate decimal.Decimal) decimal.Decimal {
	return duration.Mul(hourlyRate).Mul(rate)
}

// Totals aggregates approved overtime for a period.
type Totals struct {
	Count       int             `json:"count"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type Summary struct {
	Total       int             `json:"total"`
	Pending     int             `json:"pending"`
	Approved    int             `json:"approved"`
	Rejected    int             `json:"rejected"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
