package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	LeaveType  string `json:"leave_type" validate:"required,oneof=ANNUAL SICK MONTHLY UNPAID EMERGENCY PERMISSION OTHER"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=500"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if r.StartDate != "" {
		start, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
		r.Start = start
	}
	if r.EndDate != "" {
		end, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
		r.End = end
	}

	return errs.Err()
}

// ReviewLeaveRequest approves or rejects a pending request.
type ReviewLeaveRequest struct {
	ID         string  `json:"id" validate:"required"`
	ApproverID string  `json:"approver_id" validate:"required"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *ReviewLeaveRequest) Validate() error {
	return validator.Struct(r).Err()
}

type LeaveRequestFilter struct {
	EmployeeID *string
	LeaveType  *string
	Status     *string
	Year       *int
	Page       int
	Limit      int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.LeaveType != nil && !LeaveType(*f.LeaveType).IsValid() {
		errs.Add("leave_type", "invalid leave type")
	}
	if f.Status != nil {
		switch LeaveStatus(*f.Status) {
		case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		default:
			errs.Add("status", "invalid status")
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

type LeaveRequestResponse struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName *string     `json:"employee_name,omitempty"`
	LeaveType    LeaveType   `json:"leave_type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Duration     int         `json:"duration"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	ApprovedBy   *string     `json:"approved_by,omitempty"`
	ApprovedAt   *string     `json:"approved_at,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Duration:     r.Duration,
		Reason:       r.Reason,
		Status:       r.Status,
		ApprovedBy:   r.ApprovedBy,
		ApprovedAt:   approvedAt,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
