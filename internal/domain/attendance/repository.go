package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a check-in. A second row for the same employee and day
	// returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CheckOut sets the check-out only when it is still empty; otherwise
	// ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context, id string, at time.Time, lat, lng float64) (Attendance, error)

	// Update overwrites the mutable fields, used by admin corrections.
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndRange returns all rows with date in [from, to].
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
