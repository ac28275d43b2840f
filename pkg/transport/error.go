package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept on Error.
const maxErrorBody = 64 << 10

// Error is returned for responses with a status code of 400 or above.
type Error struct {
	Method     string
	URL        string
	StatusCode int

	// Message is the server supplied error message, when the body carried one.
	Message string

	// Body is the (possibly truncated) raw response body.
	Body []byte

	// RequestID is the correlation id sent with the request.
	RequestID string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: API returned status %d: %s",
		e.Method, e.URL, e.StatusCode, msg)
}

// Temporary reports whether the failure may succeed when retried.
func (e *Error) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsStatus reports whether err is (or wraps) an *Error with the given status
// code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

func newError(req *http.Request, status int, body []byte, requestID string) *Error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &Error{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Message:    errorMessage(body),
		Body:       body,
		RequestID:  requestID,
	}
}

// errorMessage extracts a message from JSON error bodies of the form
// {"error": "..."} or {"message": "..."}.
func errorMessage(body []byte) string {
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	if apiErr.Error != "" {
		return apiErr.Error
	}
	return apiErr.Message
}
