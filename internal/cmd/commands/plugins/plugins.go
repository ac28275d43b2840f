package plugins

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
	"github.com/openlumify/openlumify-admin/pkg/admin"
)

type Command struct {
	*base.Command

	flagFormat string
}

func (c *Command) Synopsis() string {
	return "List the plugins loaded by the server"
}

func (c *Command) Help() string {
	return `Usage: openlumify-admin plugins [options]

  List the plugins loaded by the OpenLumify server, grouped by kind.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("plugins", flag.ContinueOnError))

	c.ClientFlags(f)
	f.StringVar(
		&c.flagFormat, "format", "text",
		"Output format: text, json or yaml.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	switch c.flagFormat {
	case "text", "json", "yaml":
	default:
		ui.Error(fmt.Sprintf("unknown format %q", c.flagFormat))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, _, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	plugins, err := client.Plugins(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing plugins: %v", err))
		return 1
	}

	out, err := render(plugins, c.flagFormat)
	if err != nil {
		ui.Error(fmt.Sprintf("error rendering plugins: %v", err))
		return 1
	}
	ui.Output(out)

	return 0
}

func render(plugins admin.Object, format string) (string, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(plugins, "", "  ")
		return string(b), err
	case "yaml":
		b, err := yaml.Marshal(map[string]any(plugins))
		return strings.TrimRight(string(b), "\n"), err
	}

	var b strings.Builder
	for i, kind := range plugins.Keys() {
		if i > 0 {
			b.WriteString("\n")
		}
		entries, _ := plugins[kind].([]any)
		fmt.Fprintf(&b, "%s (%d)\n", kind, len(entries))
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s\n", describe(e))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// describe returns the most useful name of a plugin entry.
func describe(entry any) string {
	m, ok := entry.(map[string]any)
	if !ok {
		return fmt.Sprint(entry)
	}
	for _, key := range []string{"className", "name", "id"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	b, _ := json.Marshal(m)
	return string(b)
}
