package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

var notFoundErrors = []error{
	attendance.ErrAttendanceNotFound,
	shift.ErrShiftNotFound,
	shift.ErrNoShiftMatched,
	leave.ErrLeaveRequestNotFound,
	overtime.ErrOvertimeNotFound,
	debt.ErrDebtorNotFound,
	debt.ErrDebtNotFound,
	payroll.ErrPayrollNotFound,
	employee.ErrEmployeeNotFound,
	branch.ErrBranchNotFound,
	department.ErrDepartmentNotFound,
	position.ErrPositionNotFound,
}

var conflictErrors = []error{
	attendance.ErrAlreadyCheckedIn,
	attendance.ErrAlreadyCheckedOut,
	shift.ErrShiftInUse,
	leave.ErrNotPending,
	overtime.ErrNotPending,
	overtime.ErrOvertimeApproved,
	debt.ErrDebtNotActive,
	payroll.ErrPayrollAlreadyExists,
	payroll.ErrPayrollNotPending,
	employee.ErrEmployeeCodeExists,
	employee.ErrEmployeeHasHistory,
	branch.ErrBranchNameExists,
	branch.ErrBranchHasEmployees,
	department.ErrDepartmentNameExists,
	department.ErrDepartmentHasPositions,
	position.ErrPositionNameExists,
	position.ErrPositionHasEmployees,
}

// Rule rejections carry a message the caller can act on, so it is passed through.
var badRequestErrors = []error{
	geo.ErrOutsideGeofence,
	geo.ErrLocationNotConfigured,
	leave.ErrInsufficientQuota,
	leave.ErrInvalidDateRange,
	overtime.ErrInvalidTimeRange,
	overtime.ErrInvalidRate,
	debt.ErrAmountExceedsRemaining,
	debt.ErrEmployeeLinkRequired,
	employee.ErrEmployeeNotActive,
	employee.ErrInvalidEmployeeCode,
	attendance.ErrInvalidPeriod,
	payroll.ErrInvalidPeriod,
	shift.ErrInvalidClockTime,
	user.ErrEmployeeLinkRequired,
}

var forbiddenErrors = []error{
	attendance.ErrNotOwner,
	leave.ErrNotOwner,
	user.ErrInsufficientPermissions,
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case matchAny(err, forbiddenErrors):
		Forbidden(w, err.Error())
	case matchAny(err, notFoundErrors):
		NotFound(w, err.Error())
	case matchAny(err, conflictErrors):
		Conflict(w, err.Error())
	case matchAny(err, badRequestErrors):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
