package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeAnnual     LeaveType = "ANNUAL"
	LeaveTypeSick       LeaveType = "SICK"
	LeaveTypeMonthly    LeaveType = "MONTHLY"
	LeaveTypeUnpaid     LeaveType = "UNPAID"
	LeaveTypeEmergency  LeaveType = "EMERGENCY"
	LeaveTypePermission LeaveType = "PERMISSION"
	LeaveTypeOther      LeaveType = "OTHER"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeMonthly, LeaveTypeUnpaid,
		LeaveTypeEmergency, LeaveTypePermission, LeaveTypeOther:
		return true
	}
	return false
}

// IsQuotaGated reports whether requests of this type are checked against a quota.
func (t LeaveType) IsQuotaGated() bool {
	return t == LeaveTypeAnnual || t == LeaveTypeMonthly
}

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Duration   int // working days
	Reason     string
	Status     LeaveStatus
	ApprovedBy *string
	ApprovedAt *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// Quota is the balance of one quota-gated leave type.
type Quota struct {
	Quota     int `json:"quota"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

func NewQuota(quota, used int) Quota {
	return Quota{Quota: quota, Used: used, Remaining: quota - used}
}

type Balance struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Annual     Quota  `json:"annual"`
	Monthly    Quota  `json:"monthly"`
}

// For returns the quota of a gated leave type.
func (b Balance) For(t LeaveType) (Quota, bool) {
	switch t {
	case LeaveTypeAnnual:
		return b.Annual, true
	case LeaveTypeMonthly:
		return b.Monthly, true
	}
	return Quota{}, false
}
