package config

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
base_url     = "https://openlumify.example.com/openlumify"
workspace_id = "WORKSPACE_1"
csrf_token   = "csrf"
log_level    = "debug"
tls_verify   = false
timeout      = "10s"

auth {
  username = "admin"
  password = "secret"
}

retry {
  max_retries = 5
}

tracing {
  enabled = true
}
`

func writeConfig(t *testing.T, contents string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/openlumify/admin.hcl", []byte(contents), 0o600))
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeConfig(t, fullConfig)

	cfg, err := Load(fs, "/etc/openlumify/admin.hcl")
	require.NoError(t, err)

	assert.Equal(t, "https://openlumify.example.com/openlumify", cfg.BaseURL)
	assert.Equal(t, "WORKSPACE_1", cfg.WorkspaceID)
	assert.Equal(t, "csrf", cfg.CSRFToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.TLSVerify)
	assert.False(t, *cfg.TLSVerify)
	assert.Equal(t, "10s", cfg.Timeout)

	require.NotNil(t, cfg.Auth)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "secret", cfg.Auth.Password)

	require.NotNil(t, cfg.Retry)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, "1s", cfg.Retry.RetryDelay, "unset retry_delay keeps default")

	assert.True(t, cfg.TracingEnabled())
	assert.Equal(t, "openlumify-admin", cfg.Tracing.ServiceName)

	require.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	fs := writeConfig(t, `base_url = "http://localhost:8080"`)

	cfg, err := Load(fs, "/etc/openlumify/admin.hcl")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "30s", cfg.Timeout)
	require.NotNil(t, cfg.TLSVerify)
	assert.True(t, *cfg.TLSVerify)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.False(t, cfg.TracingEnabled())
	assert.Nil(t, cfg.Auth)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/missing.hcl")
	assert.Error(t, err)

	fs := writeConfig(t, `base_url = `)
	_, err = Load(fs, "/etc/openlumify/admin.hcl")
	assert.Error(t, err)

	fs = writeConfig(t, `unknown_attribute = "x"`)
	_, err = Load(fs, "/etc/openlumify/admin.hcl")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"OPENLUMIFY_BASE_URL":     "https://env.example.com",
		"OPENLUMIFY_CSRF_TOKEN":   "from-env",
		"OPENLUMIFY_TLS_VERIFY":   "false",
		"OPENLUMIFY_WORKSPACE_ID": "WS_ENV",
		"UNRELATED":               "x",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.CSRFToken)
	assert.Equal(t, "WS_ENV", cfg.WorkspaceID)
	require.NotNil(t, cfg.TLSVerify)
	assert.False(t, *cfg.TLSVerify)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "OPENLUMIFY_TLS_VERIFY" {
			return "maybe", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "ftp://example.com"
	cfg.LogLevel = "loud"
	cfg.Timeout = "soon"
	cfg.Retry.MaxRetries = -1
	cfg.Auth = &Auth{}
	cfg.OAuth = &OAuth{ClientID: "id"}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "base_url must use http or https")
	assert.Contains(t, msg, "invalid log_level")
	assert.Contains(t, msg, "invalid timeout")
	assert.Contains(t, msg, "max_retries must be non-negative")
	assert.Contains(t, msg, "auth block requires")
	assert.Contains(t, msg, "mutually exclusive")
	assert.Contains(t, msg, "token_url or issuer")
}

func TestValidate_MissingBaseURL(t *testing.T) {
	err := DefaultConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url is required")
}

func TestNewTransport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:8080/openlumify/"
	cfg.Retry.RetryDelay = "250ms"

	d, err := cfg.retryDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	tc, err := cfg.NewTransport(context.Background(), hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/openlumify", tc.BaseURL())

	cfg.BaseURL = ""
	_, err = cfg.NewTransport(context.Background(), hclog.NewNullLogger())
	assert.Error(t, err)
}
