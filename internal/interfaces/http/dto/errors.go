package dto

import (
	"net/http"
	"strings"
)

// Common error codes used by handlers directly
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps domain error codes to HTTP status codes. Codes
// starting with INVALID_ fall through to 400 without an entry here.
var statusByCode = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,

	"ALREADY_EXISTS":      http.StatusConflict,
	"NO_SESSION":          http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"IP_NOT_ALLOWED":      http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusLocked,
	"ADMIN_LOOKUP_FAILED":     http.StatusServiceUnavailable,
	"EMAIL_FAILED":            http.StatusBadGateway,
	"PAYMENT_METHOD_DISABLED": http.StatusConflict,
	"GATEWAY_FAILED":          http.StatusBadGateway,
}

// GetHTTPStatus resolves an error code to its HTTP status code.
// Unknown codes map to 500 so that unexpected failures never leak as
// client errors.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps an empty code to the internal error code
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeInternal
	}
	return code
}
