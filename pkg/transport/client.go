package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	// HeaderCSRFToken carries the session CSRF token required by mutating
	// routes.
	HeaderCSRFToken = "OpenLumify-CSRF-Token"

	// HeaderWorkspaceID carries the caller's current workspace.
	HeaderWorkspaceID = "OpenLumify-Workspace-Id"

	// HeaderRequestID correlates client logs with server logs.
	HeaderRequestID = "X-Request-Id"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the root of the OpenLumify web application, for example
	// "https://openlumify.example.com" or "https://host/openlumify".
	BaseURL string

	// HTTPClient is used to send requests. Defaults to a client with a 30
	// second timeout.
	HTTPClient *http.Client

	// Logger defaults to a null logger.
	Logger hclog.Logger

	// CSRFToken is sent with every request when set.
	CSRFToken string

	// WorkspaceID is sent with every request when set.
	WorkspaceID string

	// UserAgent is sent with every request when set.
	UserAgent string

	// MaxRetries bounds retries of idempotent requests. Zero disables
	// retries.
	MaxRetries int

	// RetryDelay is the initial delay between retries; it grows
	// exponentially.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got: %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %v", c.RetryDelay)
	}

	return nil
}

// Client is the net/http implementation of Requester.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	logger      hclog.Logger
	csrfToken   string
	workspaceID string
	userAgent   string
	maxRetries  int
	retryDelay  time.Duration
}

var _ Requester = (*Client)(nil)

// NewClient creates a new Client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}

	base, _ := url.Parse(cfg.BaseURL)
	base.Path = strings.TrimSuffix(base.Path, "/")

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:     base,
		httpClient:  cfg.HTTPClient,
		logger:      cfg.Logger.Named("transport"),
		csrfToken:   cfg.CSRFToken,
		workspaceID: cfg.WorkspaceID,
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends the request. Idempotent requests are retried on network errors and
// on 429/5xx responses; everything else is sent exactly once.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	if r == nil {
		return nil, errors.New("nil request")
	}

	endpoint, err := c.resolve(r)
	if err != nil {
		return nil, err
	}

	var (
		body        []byte
		contentType string
	)
	switch p := r.Payload.(type) {
	case nil:
	case Params:
		if !paramsInQuery(r.Method) {
			values, err := p.Values()
			if err != nil {
				return nil, err
			}
			body = []byte(values.Encode())
			contentType = "application/x-www-form-urlencoded; charset=UTF-8"
		}
	case *FormData:
		body, contentType, err = p.encode()
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported payload type %T", r.Payload)
	}

	requestID := uuid.NewString()

	var (
		result  *Response
		attempt int
	)
	op := func() error {
		attempt++
		resp, err := c.send(ctx, r, endpoint, body, contentType, requestID, attempt)
		if err != nil {
			if !idempotent(r.Method) || !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = resp
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("retrying request",
			"method", r.Method,
			"path", r.Path,
			"request_id", requestID,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(op, c.newBackOff(ctx), notify); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryDelay
	eb.MaxElapsedTime = 0

	return backoff.WithContext(
		backoff.WithMaxRetries(eb, uint64(c.maxRetries)), ctx)
}

// resolve builds the absolute URL for a request, including query parameters
// for methods that carry Params in the query string.
func (c *Client) resolve(r *Request) (string, error) {
	if !strings.HasPrefix(r.Path, "/") {
		return "", fmt.Errorf("request path must start with '/': %q", r.Path)
	}

	ref, err := url.Parse(r.Path)
	if err != nil {
		return "", fmt.Errorf("invalid request path: %w", err)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + ref.Path
	u.RawQuery = ref.RawQuery

	if p, ok := r.Payload.(Params); ok && paramsInQuery(r.Method) {
		values, err := p.Values()
		if err != nil {
			return "", err
		}
		q := u.Query()
		for k, vv := range values {
			for _, v := range vv {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func (c *Client) send(
	ctx context.Context,
	r *Request,
	endpoint string,
	body []byte,
	contentType string,
	requestID string,
	attempt int,
) (*Response, error) {
	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", r.Response.accept())
	req.Header.Set(HeaderRequestID, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.csrfToken != "" {
		req.Header.Set(HeaderCSRFToken, c.csrfToken)
	}
	if c.workspaceID != "" {
		req.Header.Set(HeaderWorkspaceID, c.workspaceID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if d, ok := debugFromContext(ctx); ok {
		d.apply(req.Header)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request completed",
		"method", r.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
		"attempt", attempt,
	)

	if resp.StatusCode >= 400 {
		return nil, newError(req, resp.StatusCode, respBody, requestID)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Type:       r.Response,
		Body:       respBody,
	}, nil
}

// retryable reports whether a failed attempt is worth repeating.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
