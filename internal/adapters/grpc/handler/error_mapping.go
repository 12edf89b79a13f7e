package handler

import (
	"errors"

	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, deptrequest.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, deptrequest.ErrUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, deptrequest.ErrInvalidID),
		errors.Is(err, deptrequest.ErrInvalidDepartmentID),
		errors.Is(err, deptrequest.ErrInvalidJobTitle),
		errors.Is(err, deptrequest.ErrInvalidReason),
		errors.Is(err, deptrequest.ErrInvalidAdminNotes),
		errors.Is(err, deptrequest.ErrInvalidStatus),
		errors.Is(err, deptrequest.ErrInvalidPageSize),
		errors.Is(err, deptrequest.ErrInvalidPageToken):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, deptrequest.ErrRequestNotFound),
		errors.Is(err, deptrequest.ErrDepartmentNotFound),
		errors.Is(err, deptrequest.ErrRequesterNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, deptrequest.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, deptrequest.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
