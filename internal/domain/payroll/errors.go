package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this period")
	ErrPayrollNotPending    = errors.New("payroll is not pending")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
)
