package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Headers understood by the server's request debug filter. They only take
// effect when the server runs with request debugging enabled.
const (
	HeaderDebugDelay     = "OpenLumify-Request-Delay-Millis"
	HeaderDebugError     = "OpenLumify-Request-Error"
	HeaderDebugErrorJSON = "OpenLumify-Request-Error-Json"
)

// Debug asks the server to delay or fail a request. Useful for exercising
// client error paths against a live server.
type Debug struct {
	// Delay holds the request on the server before it is handled.
	Delay time.Duration

	// ErrorStatus makes the server answer with this status code.
	ErrorStatus int

	// ErrorJSON makes the server answer 400 with this JSON body.
	ErrorJSON string
}

type debugKey struct{}

// WithDebug returns a context whose requests carry the given debug headers.
func WithDebug(ctx context.Context, d Debug) context.Context {
	return context.WithValue(ctx, debugKey{}, d)
}

func debugFromContext(ctx context.Context) (Debug, bool) {
	d, ok := ctx.Value(debugKey{}).(Debug)
	return d, ok
}

func (d Debug) apply(h http.Header) {
	if d.Delay > 0 {
		h.Set(HeaderDebugDelay, strconv.FormatInt(d.Delay.Milliseconds(), 10))
	}
	if d.ErrorStatus > 0 {
		h.Set(HeaderDebugError, strconv.Itoa(d.ErrorStatus))
	}
	if d.ErrorJSON != "" {
		h.Set(HeaderDebugErrorJSON, d.ErrorJSON)
	}
}
