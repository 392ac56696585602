package user

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeLinkRequired    = errors.New("this account is not linked to an employee")
)
