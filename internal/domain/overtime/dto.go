package overtime

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateOvertimeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=500"`

	// Parsed by Validate
	Day   time.Time `json:"-"`
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateOvertimeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Date != "" {
		day, ok := validator.IsValidDate(r.Date)
		if !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
		r.Day = day
	}
	if r.StartTime != "" {
		start, ok := validator.IsValidDateTime(r.StartTime)
		if !ok {
			errs.Add("start_time", "start_time must be an ISO8601 timestamp")
		}
		r.Start = start
	}
	if r.EndTime != "" {
		end, ok := validator.IsValidDateTime(r.EndTime)
		if !ok {
			errs.Add("end_time", "end_time must be an ISO8601 timestamp")
		}
		r.End = end
	}

	return errs.Err()
}

type ApproveOvertimeRequest struct {
	ID         string          `json:"id" validate:"required"`
	Rate       decimal.Decimal `json:"rate"`
	ApproverID string          `json:"approver_id" validate:"required"`
}

func (r *ApproveOvertimeRequest) Validate() error {
	return validator.Struct(r).Err()
}

type RejectOvertimeRequest struct {
	ID         string `json:"id" validate:"required"`
	ApproverID string `json:"approver_id" validate:"required"`
}

func (r *RejectOvertimeRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ApprovedTotalsRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`

	// Parsed by Validate
	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *ApprovedTotalsRequest) Validate() error {
	errs := validator.Struct(r)

	var okFrom, okTo bool
	if r.From != "" {
		if r.FromDate, okFrom = validator.IsValidDate(r.From); !okFrom {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if r.To != "" {
		if r.ToDate, okTo = validator.IsValidDate(r.To); !okTo {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if okFrom && okTo && r.FromDate.After(r.ToDate) {
		errs.Add("from", "from must not be after to")
	}

	return errs.Err()
}

type OvertimeFilter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f *OvertimeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		switch OvertimeStatus(*f.Status) {
		case OvertimeStatusPending, OvertimeStatusApproved, OvertimeStatusRejected:
		default:
			errs.Add("status", "invalid status")
		}
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
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

type OvertimeResponse struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	EmployeeName *string          `json:"employee_name,omitempty"`
	Date         string           `json:"date"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	Duration     decimal.Decimal  `json:"duration"`
	Reason       string           `json:"reason"`
	Status       OvertimeStatus   `json:"status"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	ApprovedBy   *string          `json:"approved_by,omitempty"`
	ApprovedAt   *string          `json:"approved_at,omitempty"`
}

type ListOvertimeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Overtimes  []OvertimeResponse `json:"overtimes"`
}

func ToResponse(o Overtime) OvertimeResponse {
	var approvedAt *string
	if o.ApprovedAt != nil {
		s := o.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return OvertimeResponse{
		ID:           o.ID,
		EmployeeID:   o.EmployeeID,
		EmployeeName: o.EmployeeName,
		Date:         o.Date.Format("2006-01-02"),
		StartTime:    o.StartTime.Format(time.RFC3339),
		EndTime:      o.EndTime.Format(time.RFC3339),
		Duration:     o.Duration,
		Reason:       o.Reason,
		Status:       o.Status,
		Rate:         o.Rate,
		Amount:       o.Amount,
		ApprovedBy:   o.ApprovedBy,
		ApprovedAt:   approvedAt,
	}
}
