package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrEmployeeHasHistory  = errors.New("cannot delete employee with attendance, leave or payroll history")
	ErrEmployeeNotActive   = errors.New("employee is not active")
	ErrInvalidEmployeeCode = errors.New("invalid employee code format")
)
