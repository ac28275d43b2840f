package admin

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// Object is a parsed JSON object returned by the server.
type Object map[string]any

// Client binds the OpenLumify admin routes to Go methods. Each method builds
// one request and sends it through the Requester exactly once; retries,
// authentication and error mapping belong to the Requester.
type Client struct {
	requester transport.Requester
	logger    hclog.Logger
}

// NewClient creates a new admin Client. A nil logger is replaced by a null
// logger.
func NewClient(r transport.Requester, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		requester: r,
		logger:    logger.Named("admin"),
	}
}

// send builds the request from a method tag and hands it to the requester.
func (c *Client) send(
	ctx context.Context, tag, path string, payload transport.Payload,
) (*transport.Response, error) {
	req, err := transport.NewRequest(tag, path, payload)
	if err != nil {
		return nil, err
	}

	c.logger.Trace("sending admin request", "request", req.String())

	return c.requester.Do(ctx, req)
}

// sendText sends a request whose response is handed back as text.
func (c *Client) sendText(
	ctx context.Context, tag, path string, payload transport.Payload,
) (string, error) {
	resp, err := c.send(ctx, tag, path, payload)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// sendObject sends a request whose response is a JSON object.
func (c *Client) sendObject(
	ctx context.Context, tag, path string, payload transport.Payload,
) (Object, error) {
	resp, err := c.send(ctx, tag, path, payload)
	if err != nil {
		return nil, err
	}

	obj := Object{}
	if err := resp.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%s %s: %w", tag, path, err)
	}
	return obj, nil
}
