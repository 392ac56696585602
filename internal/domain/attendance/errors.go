package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotOwner           = errors.New("attendance record belongs to another employee")
	ErrInvalidPeriod      = errors.New("invalid attendance period")
)
