package apiclient

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// APIError is returned for every failed call to the league API: non-2xx
// responses, bodies that are not JSON, and transport failures (status 502).
type APIError struct {
	StatusCode int
	Payload    gjson.Result
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.StatusCode, e.Message(), e.Err)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message())
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message is the user-facing message carried in the payload's "erro" field.
func (e *APIError) Message() string {
	if msg := e.Payload.Get("erro").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthFailure reports whether err is an upstream 401 or 403.
func IsAuthFailure(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// HasStatus reports whether err is an upstream error with the given status.
func HasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == status
}
