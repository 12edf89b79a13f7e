package deptrequest

import "errors"

var (
	ErrUnauthenticated     = errors.New("deptrequest: unauthenticated")
	ErrUnauthorized        = errors.New("deptrequest: unauthorized")
	ErrRequestNotFound     = errors.New("deptrequest: request not found")
	ErrDepartmentNotFound  = errors.New("deptrequest: department not found")
	ErrRequesterNotFound   = errors.New("deptrequest: requester not found")
	ErrInvalidID           = errors.New("deptrequest: invalid id")
	ErrInvalidDepartmentID = errors.New("deptrequest: invalid department id")
	ErrInvalidJobTitle     = errors.New("deptrequest: invalid job title")
	ErrInvalidReason       = errors.New("deptrequest: invalid reason")
	ErrInvalidAdminNotes   = errors.New("deptrequest: invalid admin notes")
	ErrInvalidStatus       = errors.New("deptrequest: invalid status")
	ErrInvalidPageSize     = errors.New("deptrequest: invalid page size")
	ErrInvalidPageToken    = errors.New("deptrequest: invalid page token")
	ErrInvalidTransition   = errors.New("deptrequest: invalid status transition")
	ErrConflict            = errors.New("deptrequest: request was modified concurrently")
)
