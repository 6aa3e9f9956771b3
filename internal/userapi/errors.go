package userapi

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Sentinel errors returned before any request is sent.
var (
	ErrUnsupported         = errors.New("operation not supported by backend")
	ErrUnsupportedCriteria = errors.New("unsupported search criteria value")
)

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is the raw response body.
	Body []byte
	// Message is the "message" field of a JSON error body, if any.
	Message string
}

func newAPIError(method, url string, status int, body []byte) *APIError {
	e := &APIError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		e.Message = env.Message
	}
	return e
}

// Error prefers the server-provided message.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Payload returns what the server sent: the body if non-empty, otherwise
// the status line.
func (e *APIError) Payload() string {
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
