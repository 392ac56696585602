package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "PRESENT"
	StatusLate       Status = "LATE"
	StatusAbsent     Status = "ABSENT"
	StatusSick       Status = "SICK"
	StatusPermission Status = "PERMISSION"
	StatusLeave      Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusSick, StatusPermission, StatusLeave:
		return true
	}
	return false
}

type Method string

const (
	MethodGPS         Method = "GPS"
	MethodFingerprint Method = "FINGERPRINT"
	MethodManual      Method = "MANUAL"
)

type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time // day bucket in the branch timezone
	CheckIn           *time.Time
	CheckOut          *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Method            Method
	Status            Status
	ShiftID           *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	ShiftName    *string
}

// WorkedHours returns the elapsed hours between check-in and check-out, 0 while
// the record is still open.
func WorkedHours(checkIn time.Time, checkOut *time.Time) float64 {
	if checkOut == nil {
		return 0
	}
	return float64(checkOut.Sub(checkIn).Milliseconds()) / 3600000
}

func (a Attendance) WorkedHours() float64 {
	if a.CheckIn == nil {
		return 0
	}
	return WorkedHours(*a.CheckIn, a.CheckOut)
}

// MonthlySummary counts attendance rows per status for one employee and month.
type MonthlySummary struct {
	EmployeeID      string  `json:"employee_id"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	PresentDays     int     `json:"present_days"`
	LateDays        int     `json:"late_days"`
	AbsentDays      int     `json:"absent_days"`
	SickDays        int     `json:"sick_days"`
	PermissionDays  int     `json:"permission_days"`
	LeaveDays       int     `json:"leave_days"`
	TotalWorkedHour float64 `json:"total_worked_hours"`
}

// Summarize folds one month of records into per-status day counts.
func Summarize(employeeID string, month, year int, records []Attendance) MonthlySummary {
	summary := MonthlySummary{EmployeeID: employeeID, Month: month, Year: year}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusLate:
			summary.LateDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusSick:
			summary.SickDays++
		case StatusPermission:
			summary.PermissionDays++
		case StatusLeave:
			summary.LeaveDays++
		}
		summary.TotalWorkedHour += r.WorkedHours()
	}
	return summary
}

// MonthRange returns the first and last calendar day of a month.
func MonthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}
