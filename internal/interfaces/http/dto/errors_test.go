package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"NO_SESSION", http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_DEACTIVATED", http.StatusForbidden},
		{"ACCOUNT_LOCKED", http.StatusLocked},
		{"ADMIN_LOOKUP_FAILED", http.StatusServiceUnavailable},
		{"INVALID_EMAIL", http.StatusBadRequest},
		{"INVALID_QUERY", http.StatusBadRequest},
		{"RATE_LIMITED", http.StatusTooManyRequests},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(""))
	assert.Equal(t, "NOT_FOUND", NormalizeErrorCode("NOT_FOUND"))
}
