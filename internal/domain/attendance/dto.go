package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Latitude   float64 `json:"latitude" validate:"latitude"`
	Longitude  float64 `json:"longitude" validate:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	return validator.Struct(r).Err()
}

type CheckOutRequest struct {
	AttendanceID string  `json:"attendance_id" validate:"required"`
	EmployeeID   string  `json:"employee_id" validate:"required"`
	Latitude     float64 `json:"latitude" validate:"latitude"`
	Longitude    float64 `json:"longitude" validate:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	return validator.Struct(r).Err()
}

// CorrectAttendanceRequest is an admin fix of a record. Nil fields are left untouched.
type CorrectAttendanceRequest struct {
	ID       string  `json:"id" validate:"required"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=PRESENT LATE ABSENT SICK PERMISSION LEAVE"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *CorrectAttendanceRequest) Validate() error {
	errs := validator.Struct(r)

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs.Add("check_in", "check_in must be an ISO8601 timestamp")
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs.Add("check_out", "check_out must be an ISO8601 timestamp")
		}
	}

	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

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
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", "invalid status")
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	CheckIn           *string  `json:"check_in,omitempty"`
	CheckOut          *string  `json:"check_out,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Method            Method   `json:"method"`
	Status            Status   `json:"status"`
	ShiftID           *string  `json:"shift_id,omitempty"`
	ShiftName         *string  `json:"shift_name,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	WorkingHours      float64  `json:"working_hours"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		Date:              a.Date.Format("2006-01-02"),
		CheckIn:           timePtrToString(a.CheckIn),
		CheckOut:          timePtrToString(a.CheckOut),
		CheckInLatitude:   a.CheckInLatitude,
		CheckInLongitude:  a.CheckInLongitude,
		CheckOutLatitude:  a.CheckOutLatitude,
		CheckOutLongitude: a.CheckOutLongitude,
		Method:            a.Method,
		Status:            a.Status,
		ShiftID:           a.ShiftID,
		ShiftName:         a.ShiftName,
		Notes:             a.Notes,
		WorkingHours:      a.WorkedHours(),
	}
}
