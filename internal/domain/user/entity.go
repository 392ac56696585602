package user

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access
	RoleHR       Role = "HR"       // Manages employees, approvals and payroll
	RoleEmployee Role = "EMPLOYEE" // Self service only
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// Identity is the caller resolved from an access token.
type Identity struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// IsStaff reports whether the caller may act on other employees' records.
func (i Identity) IsStaff() bool {
	return i.Role == RoleAdmin || i.Role == RoleHR
}

// HasEmployee reports whether the token is linked to an employee record.
func (i Identity) HasEmployee() bool {
	return i.EmployeeID != nil && *i.EmployeeID != ""
}
