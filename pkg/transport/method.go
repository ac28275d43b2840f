package transport

import (
	"fmt"
	"net/http"
	"strings"
)

// ResponseType selects how a response body is interpreted.
type ResponseType int

const (
	// ResponseJSON responses are decoded as JSON.
	ResponseJSON ResponseType = iota

	// ResponseHTML responses are handed back as raw text.
	ResponseHTML
)

// String returns the shape name used in method tags.
func (t ResponseType) String() string {
	switch t {
	case ResponseHTML:
		return "HTML"
	default:
		return "JSON"
	}
}

// accept returns the Accept header value for the response type.
func (t ResponseType) accept() string {
	if t == ResponseHTML {
		return "text/html, text/plain, */*"
	}
	return "application/json"
}

// ParseMethod parses a method tag such as "GET" or "POST->HTML" into an HTTP
// method and the expected response type.
func ParseMethod(tag string) (string, ResponseType, error) {
	method, shape, found := strings.Cut(strings.TrimSpace(tag), "->")
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return "", ResponseJSON, fmt.Errorf("empty method in tag %q", tag)
	}

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
	default:
		return "", ResponseJSON, fmt.Errorf("unsupported method %q in tag %q", method, tag)
	}

	if !found {
		return method, ResponseJSON, nil
	}

	switch strings.ToUpper(strings.TrimSpace(shape)) {
	case "JSON":
		return method, ResponseJSON, nil
	case "HTML", "TEXT":
		return method, ResponseHTML, nil
	default:
		return "", ResponseJSON, fmt.Errorf("unknown response shape %q in tag %q", shape, tag)
	}
}

// idempotent reports whether a request with the given method may be safely
// replayed.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
		return true
	}
	return false
}

// paramsInQuery reports whether Params payloads travel in the query string
// for the given method.
func paramsInQuery(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	}
	return false
}
