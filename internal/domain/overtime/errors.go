package overtime

import "errors"

var (
	ErrOvertimeNotFound = errors.New("overtime request not found")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidRate      = errors.New("overtime rate must be greater than zero")
	ErrNotPending       = errors.New("overtime request is not pending")
	ErrOvertimeApproved = errors.New("approved overtime cannot be deleted")
)
