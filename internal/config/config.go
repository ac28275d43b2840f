package config

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"

	"github.com/openlumify/openlumify-admin/internal/version"
	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// EnvPrefix prefixes environment variables that override top-level config
// attributes, e.g. OPENLUMIFY_BASE_URL.
const EnvPrefix = "OPENLUMIFY_"

// Config is the admin client configuration.
//
// Example configuration (HCL):
//
//	base_url     = "https://openlumify.example.com"
//	workspace_id = "WORKSPACE_1234"
//	log_level    = "info"
//
//	auth {
//	  username = "admin"
//	  password = "secret"
//	}
//
//	retry {
//	  max_retries = 3
//	  retry_delay = "1s"
//	}
type Config struct {
	// BaseURL is the root of the OpenLumify web application.
	BaseURL string `hcl:"base_url,optional"`

	// WorkspaceID is the default workspace for graph operations.
	WorkspaceID string `hcl:"workspace_id,optional"`

	// CSRFToken is sent on every request when set.
	CSRFToken string `hcl:"csrf_token,optional"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `hcl:"log_level,optional"`

	// TLSVerify controls TLS certificate verification.
	TLSVerify *bool `hcl:"tls_verify,optional"`

	// Timeout bounds each HTTP request, as a Go duration string.
	Timeout string `hcl:"timeout,optional"`

	Auth    *Auth    `hcl:"auth,block"`
	OAuth   *OAuth   `hcl:"oauth,block"`
	Retry   *Retry   `hcl:"retry,block"`
	Tracing *Tracing `hcl:"tracing,block"`
}

// Auth configures static credentials.
type Auth struct {
	Username string `hcl:"username,optional"`
	Password string `hcl:"password,optional"`
	Token    string `hcl:"token,optional"`
}

// OAuth configures the client credentials flow.
type OAuth struct {
	ClientID     string   `hcl:"client_id"`
	ClientSecret string   `hcl:"client_secret,optional"`
	TokenURL     string   `hcl:"token_url,optional"`
	Issuer       string   `hcl:"issuer,optional"`
	Scopes       []string `hcl:"scopes,optional"`
}

// Retry configures retries of idempotent requests.
type Retry struct {
	MaxRetries int    `hcl:"max_retries,optional"`
	RetryDelay string `hcl:"retry_delay,optional"`
}

// Tracing configures Datadog tracing of outgoing requests.
type Tracing struct {
	Enabled     bool   `hcl:"enabled,optional"`
	ServiceName string `hcl:"service_name,optional"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		LogLevel:  "info",
		TLSVerify: &tlsVerify,
		Timeout:   "30s",
		Retry: &Retry{
			MaxRetries: 3,
			RetryDelay: "1s",
		},
		Tracing: &Tracing{
			ServiceName: "openlumify-admin",
		},
	}
}

// Load parses the HCL file at path on fs. Attributes missing from the file
// keep their default values.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var parsed Config
	if err := hclsimple.Decode(path, src, nil, &parsed); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.merge(&parsed)
	return cfg, nil
}

// merge copies every set value of other onto c.
func (c *Config) merge(other *Config) {
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.WorkspaceID != "" {
		c.WorkspaceID = other.WorkspaceID
	}
	if other.CSRFToken != "" {
		c.CSRFToken = other.CSRFToken
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.TLSVerify != nil {
		c.TLSVerify = other.TLSVerify
	}
	if other.Timeout != "" {
		c.Timeout = other.Timeout
	}
	if other.Auth != nil {
		c.Auth = other.Auth
	}
	if other.OAuth != nil {
		c.OAuth = other.OAuth
	}
	if other.Retry != nil {
		if other.Retry.RetryDelay == "" {
			other.Retry.RetryDelay = c.Retry.RetryDelay
		}
		c.Retry = other.Retry
	}
	if other.Tracing != nil {
		if other.Tracing.ServiceName == "" {
			other.Tracing.ServiceName = c.Tracing.ServiceName
		}
		c.Tracing = other.Tracing
	}
}

// ApplyEnv overrides top-level string and bool attributes from environment
// variables named EnvPrefix + the attribute name in screaming snake case.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	var result *multierror.Error
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("hcl"), ",")
		if name == "" {
			continue
		}

		val, ok := lookup(EnvPrefix + strcase.ToScreamingSnake(name))
		if !ok {
			continue
		}

		field := v.Field(i)
		switch {
		case field.Kind() == reflect.String:
			field.SetString(val)
		case field.Type() == reflect.TypeOf((*bool)(nil)):
			b, err := strconv.ParseBool(val)
			if err != nil {
				result = multierror.Append(result,
					fmt.Errorf("invalid boolean for %s: %w", name, err))
				continue
			}
			field.Set(reflect.ValueOf(&b))
		}
	}

	return result.ErrorOrNil()
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base_url is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result,
			fmt.Errorf("base_url must use http or https scheme, got: %q", u.Scheme))
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level: %q", c.LogLevel))
	}

	if _, err := c.timeout(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Retry != nil {
		if c.Retry.MaxRetries < 0 {
			result = multierror.Append(result,
				fmt.Errorf("retry.max_retries must be non-negative, got: %d", c.Retry.MaxRetries))
		}
		if _, err := c.retryDelay(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.Auth != nil && c.Auth.Token == "" && c.Auth.Username == "" {
		result = multierror.Append(result,
			fmt.Errorf("auth block requires either token or username"))
	}

	if c.OAuth != nil {
		if c.Auth != nil {
			result = multierror.Append(result,
				fmt.Errorf("auth and oauth blocks are mutually exclusive"))
		}
		if c.OAuth.TokenURL == "" && c.OAuth.Issuer == "" {
			result = multierror.Append(result,
				fmt.Errorf("oauth block requires either token_url or issuer"))
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must be non-negative, got: %v", d)
	}
	return d, nil
}

func (c *Config) retryDelay() (time.Duration, error) {
	if c.Retry == nil || c.Retry.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Retry.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid retry.retry_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("retry.retry_delay must be non-negative, got: %v", d)
	}
	return d, nil
}

// TracingEnabled reports whether Datadog tracing is configured.
func (c *Config) TracingEnabled() bool {
	return c.Tracing != nil && c.Tracing.Enabled
}

// NewTransport validates the configuration and builds a transport client.
func (c *Config) NewTransport(ctx context.Context, logger hclog.Logger) (*transport.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	timeout, _ := c.timeout()
	hcCfg := transport.HTTPClientConfig{
		Timeout:            timeout,
		InsecureSkipVerify: c.TLSVerify != nil && !*c.TLSVerify,
	}
	if c.Auth != nil {
		hcCfg.BearerToken = c.Auth.Token
		hcCfg.Username = c.Auth.Username
		hcCfg.Password = c.Auth.Password
	}
	if c.OAuth != nil {
		hcCfg.OAuth = &transport.OAuthConfig{
			ClientID:     c.OAuth.ClientID,
			ClientSecret: c.OAuth.ClientSecret,
			TokenURL:     c.OAuth.TokenURL,
			Issuer:       c.OAuth.Issuer,
			Scopes:       c.OAuth.Scopes,
		}
	}
	if c.TracingEnabled() {
		hcCfg.TraceServiceName = c.Tracing.ServiceName
	}

	hc, err := transport.NewHTTPClient(ctx, hcCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP client: %w", err)
	}

	tCfg := transport.Config{
		BaseURL:     c.BaseURL,
		HTTPClient:  hc,
		Logger:      logger,
		CSRFToken:   c.CSRFToken,
		WorkspaceID: c.WorkspaceID,
		UserAgent:   "openlumify-admin/" + version.Version,
	}
	if c.Retry != nil {
		tCfg.MaxRetries = c.Retry.MaxRetries
		tCfg.RetryDelay, _ = c.retryDelay()
	}

	return transport.NewClient(tCfg)
}
