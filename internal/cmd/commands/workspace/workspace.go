package workspace

import (
	"flag"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Share and import workspaces"
}

func (c *Command) Help() string {
	return `Usage: openlumify-admin workspace <subcommand> [options] [args]

  This command groups subcommands for OpenLumify workspaces.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ShareCommand struct {
	*base.Command

	flagOpen bool
}

func (c *ShareCommand) Synopsis() string {
	return "Share a workspace with a user"
}

func (c *ShareCommand) Help() string {
	return `Usage: openlumify-admin workspace share [options] <workspace-id> <user-name>

  Share a workspace with a user.` +
		c.Flags().Help()
}

func (c *ShareCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("workspace share", flag.ContinueOnError))

	c.ClientFlags(f)
	f.BoolVar(
		&c.flagOpen, "open", false,
		"Open the shared workspace in a browser afterwards.",
	)

	return f
}

func (c *ShareCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("a workspace id and a user name are required")
		return 1
	}
	workspaceID, userName := flags.Arg(0), flags.Arg(1)

	ctx, cancel := c.Context()
	defer cancel()

	client, cfg, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	if _, err := client.WorkspaceShare(ctx, workspaceID, userName); err != nil {
		ui.Error(fmt.Sprintf("error sharing workspace %q: %v", workspaceID, err))
		return 1
	}
	ui.Info(fmt.Sprintf("Shared workspace %q with %q", workspaceID, userName))

	if c.flagOpen && c.OpenURL != nil {
		link := WorkspaceURL(cfg.BaseURL, workspaceID)
		if err := c.OpenURL(link); err != nil {
			ui.Warn(fmt.Sprintf("Could not open browser: %v", err))
		}
	}

	return 0
}

// WorkspaceURL returns the web application link that opens a workspace.
func WorkspaceURL(baseURL, workspaceID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/#w=" + url.QueryEscape(workspaceID)
}

type ImportCommand struct {
	*base.Command
}

func (c *ImportCommand) Synopsis() string {
	return "Import an exported workspace"
}

func (c *ImportCommand) Help() string {
	return `Usage: openlumify-admin workspace import [options] <file>

  Upload a workspace previously exported from OpenLumify.` +
		c.Flags().Help()
}

func (c *ImportCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("workspace import", flag.ContinueOnError))

	c.ClientFlags(f)

	return f
}

func (c *ImportCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("exactly one workspace file is required")
		return 1
	}
	path := flags.Arg(0)

	ctx, cancel := c.Context()
	defer cancel()

	client, _, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	out, err := client.WorkspaceImportFile(ctx, c.Filesystem(), path)
	if err != nil {
		ui.Error(fmt.Sprintf("error importing workspace %q: %v", path, err))
		return 1
	}

	ui.Info(fmt.Sprintf("Imported workspace from %q", path))
	if strings.TrimSpace(out) != "" {
		ui.Output(out)
	}
	return 0
}
