package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	UserID            *string          `json:"user_id,omitempty" validate:"omitempty,uuid"`
	EmployeeCode      string           `json:"employee_code" validate:"required"`
	FullName          string           `json:"full_name" validate:"required,max=150"`
	Email             *string          `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber       *string          `json:"phone_number,omitempty"`
	BranchID          string           `json:"branch_id" validate:"required,uuid"`
	PositionID        string           `json:"position_id" validate:"required,uuid"`
	JoinDate          string           `json:"join_date" validate:"required"`
	AnnualLeaveQuota  *int             `json:"annual_leave_quota,omitempty" validate:"omitempty,min=0,max=365"`
	MonthlyLeaveQuota *int             `json:"monthly_leave_quota,omitempty" validate:"omitempty,min=0,max=31"`
	HourlyRate        *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeCode != "" && !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_code", "employee_code must be in NNNN-NNNN format")
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must be a valid Indonesian number")
	}
	if r.JoinDate != "" {
		if _, ok := validator.IsValidDate(r.JoinDate); !ok {
			errs.Add("join_date", "join_date must be in YYYY-MM-DD format")
		}
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourly_rate", "hourly_rate must not be negative")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID                string            `json:"id" validate:"required"`
	FullName          *string           `json:"full_name,omitempty" validate:"omitempty,min=1,max=150"`
	Email             *string           `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber       *string           `json:"phone_number,omitempty"`
	BranchID          *string           `json:"branch_id,omitempty" validate:"omitempty,uuid"`
	PositionID        *string           `json:"position_id,omitempty" validate:"omitempty,uuid"`
	EmploymentStatus  *EmploymentStatus `json:"employment_status,omitempty"`
	AnnualLeaveQuota  *int              `json:"annual_leave_quota,omitempty" validate:"omitempty,min=0,max=365"`
	MonthlyLeaveQuota *int              `json:"monthly_leave_quota,omitempty" validate:"omitempty,min=0,max=31"`
	HourlyRate        *decimal.Decimal  `json:"hourly_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must be a valid Indonesian number")
	}
	if r.EmploymentStatus != nil && !r.EmploymentStatus.IsValid() {
		errs.Add("employment_status", "employment_status must be one of: ACTIVE, RESIGNED, TERMINATED")
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourly_rate", "hourly_rate must not be negative")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	BranchID   *string
	PositionID *string
	Status     *EmploymentStatus
	Search     *string
	Page       int
	Limit      int
}

// Normalize clamps paging to sane values.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID                string           `json:"id"`
	UserID            *string          `json:"user_id,omitempty"`
	EmployeeCode      string           `json:"employee_code"`
	FullName          string           `json:"full_name"`
	Email             *string          `json:"email,omitempty"`
	PhoneNumber       *string          `json:"phone_number,omitempty"`
	BranchID          string           `json:"branch_id"`
	BranchName        *string          `json:"branch_name,omitempty"`
	PositionID        string           `json:"position_id"`
	PositionName      *string          `json:"position_name,omitempty"`
	JoinDate          string           `json:"join_date"`
	EmploymentStatus  EmploymentStatus `json:"employment_status"`
	AnnualLeaveQuota  int              `json:"annual_leave_quota"`
	MonthlyLeaveQuota int              `json:"monthly_leave_quota"`
	HourlyRate        *decimal.Decimal `json:"hourly_rate,omitempty"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		EmployeeCode:      e.EmployeeCode,
		FullName:          e.FullName,
		Email:             e.Email,
		PhoneNumber:       e.PhoneNumber,
		BranchID:          e.BranchID,
		BranchName:        e.BranchName,
		PositionID:        e.PositionID,
		PositionName:      e.PositionName,
		JoinDate:          e.JoinDate.Format("2006-01-02"),
		EmploymentStatus:  e.EmploymentStatus,
		AnnualLeaveQuota:  e.AnnualLeaveQuota,
		MonthlyLeaveQuota: e.MonthlyLeaveQuota,
		HourlyRate:        e.HourlyRate,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
}
