package payroll

import "errors"

var (
	ErrPayrollNotFound    = errors.New("payroll record not found")
	ErrPayrollAlreadyPaid = errors.New("payroll record already paid")
	ErrNoWorkingDays      = errors.New("payroll period has no working days")
	ErrEmployeeNotLinked  = errors.New("user is not linked to an employee record")
	ErrInvalidPolicy      = errors.New("invalid payroll policy")
	ErrNegativeAmount     = errors.New("monetary amount must be non-negative")
)
