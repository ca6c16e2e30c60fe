package providers

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the selected vendor requires an API key and
// none was configured or supplied with the request.
var ErrMissingAPIKey = errors.New("API key required")

// APIError carries a vendor's non-2xx response body.
type APIError struct {
	Vendor Kind
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Vendor, e.Status, e.Body)
}

func missingKey(kind Kind) error {
	return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, kind)
}
