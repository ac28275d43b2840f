package user

import (
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage users"
}

func (c *Command) Help() string {
	return `Usage: openlumify-admin user <subcommand> [options] [args]

  This command groups subcommands for managing OpenLumify users.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a user"
}

func (c *DeleteCommand) Help() string {
	return `Usage: openlumify-admin user delete [options] <user-name>

  Delete the user with the given user name.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("user delete", flag.ContinueOnError))

	c.ClientFlags(f)

	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("exactly one user name is required")
		return 1
	}
	userName := flags.Arg(0)

	ctx, cancel := c.Context()
	defer cancel()

	client, _, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	if _, err := client.UserDelete(ctx, userName); err != nil {
		ui.Error(fmt.Sprintf("error deleting user %q: %v", userName, err))
		return 1
	}

	ui.Info(fmt.Sprintf("Deleted user %q", userName))
	return 0
}
