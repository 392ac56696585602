package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrNoShiftMatched   = errors.New("no matching shift found for this time")
	ErrInvalidClockTime = errors.New("time must be in HH:MM format")
	ErrShiftInUse       = errors.New("cannot delete shift referenced by attendance records")
)
