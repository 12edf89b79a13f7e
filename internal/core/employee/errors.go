package employee

import "errors"

var (
	ErrInvalidID           = errors.New("employee: invalid id")
	ErrInvalidDepartmentID = errors.New("employee: invalid department id")
	ErrEmployeeNotFound    = errors.New("employee: not found")
	ErrDepartmentNotFound  = errors.New("employee: department not found")
)
