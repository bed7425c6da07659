package ledger

import "errors"

var (
	// ErrInvalidEmployee is returned when the employee id is missing or malformed.
	ErrInvalidEmployee = errors.New("invalid employee id")

	// ErrInvalidDate is returned when the attendance date is missing or unparseable.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidStatus is returned when the status is not present or absent.
	ErrInvalidStatus = errors.New("invalid attendance status")

	// ErrInvalidLeaveType is returned when the leave type is not a recognized category.
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrEmployeeNotFound is returned when the referenced employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
)
