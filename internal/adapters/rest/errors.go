package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
)

type errorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []fieldError `json:"details,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(status, errorResponse{Code: code, Message: message})
}

// writeBindingError は gin のバインディング失敗を 400 として返します。
func writeBindingError(c *gin.Context, err error) {
	resp := errorResponse{Code: "VALIDATION_ERROR", Message: "request body is invalid"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Details = append(resp.Details, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	} else {
		resp.Message = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, deptrequest.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, deptrequest.ErrUnauthorized):
		return http.StatusForbidden, "UNAUTHORIZED"
	case errors.Is(err, deptrequest.ErrRequestNotFound),
		errors.Is(err, deptrequest.ErrDepartmentNotFound),
		errors.Is(err, deptrequest.ErrRequesterNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, deptrequest.ErrInvalidID),
		errors.Is(err, deptrequest.ErrInvalidDepartmentID),
		errors.Is(err, deptrequest.ErrInvalidJobTitle),
		errors.Is(err, deptrequest.ErrInvalidReason),
		errors.Is(err, deptrequest.ErrInvalidAdminNotes),
		errors.Is(err, deptrequest.ErrInvalidStatus),
		errors.Is(err, deptrequest.ErrInvalidPageSize),
		errors.Is(err, deptrequest.ErrInvalidPageToken):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, deptrequest.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, deptrequest.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "PERSISTENCE_ERROR"
	}
}
