package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultAnnualLeaveQuota  = 12
	DefaultMonthlyLeaveQuota = 1
)

type Employee struct {
	ID                string
	UserID            *string
	EmployeeCode      string
	FullName          string
	Email             *string
	PhoneNumber       *string
	BranchID          string
	PositionID        string
	JoinDate          time.Time
	EmploymentStatus  EmploymentStatus
	AnnualLeaveQuota  int
	MonthlyLeaveQuota int
	HourlyRate        *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	BranchName   *string
	PositionName *string
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "ACTIVE"
	EmploymentStatusResigned   EmploymentStatus = "RESIGNED"
	EmploymentStatusTerminated EmploymentStatus = "TERMINATED"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusResigned, EmploymentStatusTerminated:
		return true
	}
	return false
}

// HourlyRateOrZero returns the configured hourly rate, zero when unset.
func (e Employee) HourlyRateOrZero() decimal.Decimal {
	if e.HourlyRate == nil {
		return decimal.Zero
	}
	return *e.HourlyRate
}
