package tools

import (
	"errors"
	"net/http"
)

// Domain errors for tool operations.
var (
	ErrNotFound         = errors.New("tool not found")
	ErrDuplicate        = errors.New("tool name already exists")
	ErrBuiltinImmutable = errors.New("builtin tools cannot be modified")
	ErrInvalidSchema    = errors.New("invalid tool schema")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrBuiltinImmutable) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidSchema) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
