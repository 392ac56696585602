package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn validates location and shift, then records today's check-in.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes an open attendance record.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Correct is the admin override. It skips location and shift rules.
	Correct(ctx context.Context, req CorrectAttendanceRequest) (AttendanceResponse, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// MonthlySummary aggregates an employee's month by status.
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummary, error)
}
