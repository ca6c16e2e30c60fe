package executions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/providers"
)

// Domain errors for execution operations.
var (
	ErrNotFound   = errors.New("execution not found")
	ErrEmptyInput = errors.New("input is required")
)

// MapHTTPStatus classifies execution errors. Domain sentinels are checked
// first; vendor errors fall back to substring matching on the message, which
// is the contract the REST surface promises for provider failures.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, agents.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, providers.ErrMissingAPIKey):
		return http.StatusUnauthorized
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return http.StatusUnauthorized
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
