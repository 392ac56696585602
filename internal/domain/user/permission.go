package user

type Permission string

const (
	// Attendance
	PermissionAttendanceSelf    Permission = "attendance.self"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Leave
	PermissionLeaveSelf    Permission = "leave.self"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Overtime
	PermissionOvertimeSelf    Permission = "overtime.self"
	PermissionOvertimeViewAll Permission = "overtime.view_all"
	PermissionOvertimeApprove Permission = "overtime.approve"

	// Debt ledger
	PermissionDebtManage Permission = "debt.manage"

	// Payroll
	PermissionPayrollManage Permission = "payroll.manage"

	// Master data
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"
)

var selfService = []Permission{
	PermissionAttendanceSelf,
	PermissionShiftView,
	PermissionLeaveSelf,
	PermissionOvertimeSelf,
	PermissionMasterView,
}

var staff = append(append([]Permission{}, selfService...),
	PermissionAttendanceViewAll,
	PermissionAttendanceCorrect,
	PermissionShiftManage,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionOvertimeViewAll,
	PermissionOvertimeApprove,
	PermissionDebtManage,
	PermissionPayrollManage,
	PermissionMasterManage,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    staff,
	RoleHR:       staff,
	RoleEmployee: selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
