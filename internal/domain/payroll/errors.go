package payroll

import "errors"

var (
	// ErrRecordAlreadyExists makes calculation write-once per
	// (user, month, year); terminal for the period.
	ErrRecordAlreadyExists = errors.New("payroll record already exists for this period")

	ErrRecordNotFound = errors.New("payroll record not found")
)
