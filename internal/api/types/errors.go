package types

import (
	"errors"
	"net/http"

	appErr "github.com/user-directory/engine/pkg/errors"
)

// FromAppError converts err into the wire error. Messages of non-AppErrors
// are not exposed.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if errors.As(err, &e) {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeInternal), Message: "internal error"}
}

// StatusFor maps an error code onto its HTTP status.
func StatusFor(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeRateLimited:
		return http.StatusTooManyRequests
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	case appErr.CodeDeadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
