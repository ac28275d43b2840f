package base

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/browser"
	"github.com/spf13/afero"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/openlumify/openlumify-admin/internal/config"
	"github.com/openlumify/openlumify-admin/internal/version"
	"github.com/openlumify/openlumify-admin/pkg/admin"
)

// Command holds what every command needs: a logger, a UI and access to the
// environment. Commands embed it.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used to read config and workspace files.
	Fs afero.Fs

	// LookupEnv resolves environment overrides.
	LookupEnv func(string) (string, bool)

	// OpenURL opens a URL in the user's browser.
	OpenURL func(string) error

	flagConfig   string
	flagBaseURL  string
	flagLogLevel string
}

// NewCommand returns a Command wired to the real environment.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:       log,
		UI:        ui,
		Fs:        afero.NewOsFs(),
		LookupEnv: os.LookupEnv,
		OpenURL:   browser.OpenURL,
	}
}

// ClientFlags registers the flags shared by every command that talks to the
// server.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to an HCL config file. Environment variables prefixed with "+
			config.EnvPrefix+" override it.",
	)
	f.StringVar(
		&c.flagBaseURL, "base-url", "",
		"Base URL of the OpenLumify web application. Overrides the config file.",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error). Overrides the config file.",
	)
}

// Config loads the configuration from the config file (if any), the
// environment and the command line, in increasing order of precedence.
func (c *Command) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.flagConfig != "" {
		loaded, err := config.Load(c.Filesystem(), c.flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.LookupEnv != nil {
		if err := cfg.ApplyEnv(c.LookupEnv); err != nil {
			return nil, fmt.Errorf("error applying environment: %w", err)
		}
	}

	if c.flagBaseURL != "" {
		cfg.BaseURL = c.flagBaseURL
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}

	return cfg, nil
}

// Client builds an admin client from the configuration. The returned cleanup
// function must be called when the command finishes.
func (c *Command) Client(ctx context.Context) (*admin.Client, *config.Config, func(), error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	cleanup := func() {}
	if cfg.TracingEnabled() {
		tracer.Start(
			tracer.WithService(cfg.Tracing.ServiceName),
			tracer.WithServiceVersion(version.Version),
		)
		cleanup = tracer.Stop
	}

	tc, err := cfg.NewTransport(ctx, c.Log)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	c.Log.Debug("admin client ready", "base_url", tc.BaseURL())

	return admin.NewClient(tc, c.Log), cfg, cleanup, nil
}

// Context returns a context cancelled on SIGINT or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Filesystem returns Fs, defaulting to the OS filesystem.
func (c *Command) Filesystem() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}
	return c.Fs
}

// FlagSet wraps flag.FlagSet to render help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned rather than printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flags as an "Options:" section.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}
