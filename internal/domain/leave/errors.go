package leave

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInsufficientQuota    = errors.New("insufficient leave quota")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrNotPending           = errors.New("leave request is not pending")
	ErrNotOwner             = errors.New("you can only cancel your own leave request")
)

// QuotaError carries the remaining balance of a rejected request.
type QuotaError struct {
	LeaveType LeaveType
	Requested int
	Remaining int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("insufficient %s leave quota. you have %d days remaining", strings.ToLower(string(e.LeaveType)), e.Remaining)
}

func (e *QuotaError) Unwrap() error {
	return ErrInsufficientQuota
}
