package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Requester sends a single request to the backend and returns its parsed
// response. Implementations own retries, authentication and tracing.
type Requester interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request describes one backend call.
type Request struct {
	// Method is the HTTP method, e.g. "POST".
	Method string

	// Response is the expected shape of the response body.
	Response ResponseType

	// Path is relative to the configured base URL, e.g. "/admin/plugins".
	Path string

	// Payload is optional.
	Payload Payload
}

// NewRequest builds a Request from a method tag (see ParseMethod), a path and
// an optional payload.
func NewRequest(tag, path string, payload Payload) (*Request, error) {
	method, rt, err := ParseMethod(tag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("empty request path")
	}
	return &Request{
		Method:   method,
		Response: rt,
		Path:     path,
		Payload:  payload,
	}, nil
}

// String returns the request in method tag form, e.g. "POST->HTML /admin/deleteEdge".
func (r *Request) String() string {
	if r.Response == ResponseHTML {
		return fmt.Sprintf("%s->%s %s", r.Method, r.Response, r.Path)
	}
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

// Response is a successful (2xx/3xx) backend response.
type Response struct {
	StatusCode int
	Header     http.Header
	Type       ResponseType
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
