package notification

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/cli"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
	"github.com/openlumify/openlumify-admin/pkg/admin"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage system notifications"
}

func (c *Command) Help() string {
	return `Usage: openlumify-admin notification <subcommand> [options] [args]

  This command groups subcommands for system notifications shown to every
  user of OpenLumify.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type CreateCommand struct {
	*base.Command

	flagSeverity    string
	flagTitle       string
	flagMessage     string
	flagStart       string
	flagEnd         string
	flagExternalURL string

	// now is overridden in tests.
	now func() time.Time
}

func (c *CreateCommand) Synopsis() string {
	return "Create a system notification"
}

func (c *CreateCommand) Help() string {
	return `Usage: openlumify-admin notification create [options]

  Create a system notification. Dates accept most common formats, for example
  "2026-10-20 16:00", "Oct 20 2026 4pm" or RFC 3339; dates without a zone are
  read in local time.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("notification create", flag.ContinueOnError))

	c.ClientFlags(f)
	f.StringVar(
		&c.flagSeverity, "severity", string(admin.SeverityInformational),
		"Severity: INFORMATIONAL, WARNING or CRITICAL.",
	)
	f.StringVar(
		&c.flagTitle, "title", "", "(Required) Notification title.",
	)
	f.StringVar(
		&c.flagMessage, "message", "", "(Required) Notification message.",
	)
	f.StringVar(
		&c.flagStart, "start", "",
		"When the notification starts showing. Defaults to now.",
	)
	f.StringVar(
		&c.flagEnd, "end", "",
		"When the notification stops showing. Omit for no end.",
	)
	f.StringVar(
		&c.flagExternalURL, "external-url", "",
		"Link shown with the notification.",
	)

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	n := admin.SystemNotification{
		Severity:    admin.Severity(strings.ToUpper(c.flagSeverity)),
		Title:       c.flagTitle,
		Message:     c.flagMessage,
		StartDate:   now(),
		ExternalURL: c.flagExternalURL,
	}

	if c.flagStart != "" {
		start, err := dateparse.ParseLocal(c.flagStart)
		if err != nil {
			ui.Error(fmt.Sprintf("error parsing start date: %v", err))
			return 1
		}
		n.StartDate = start
	}
	if c.flagEnd != "" {
		end, err := dateparse.ParseLocal(c.flagEnd)
		if err != nil {
			ui.Error(fmt.Sprintf("error parsing end date: %v", err))
			return 1
		}
		n.EndDate = end
	}

	opts, err := n.Options()
	if err != nil {
		ui.Error(fmt.Sprintf("invalid notification: %v", err))
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

	created, err := client.SystemNotificationCreate(ctx, opts)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating system notification: %v", err))
		return 1
	}

	if id, ok := created["id"].(string); ok && id != "" {
		ui.Info(fmt.Sprintf("Created system notification %q", id))
	} else {
		ui.Info("Created system notification")
	}

	return 0
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a system notification"
}

func (c *DeleteCommand) Help() string {
	return `Usage: openlumify-admin notification delete [options] <notification-id>

  Delete a system notification.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("notification delete", flag.ContinueOnError))

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
		ui.Error("exactly one notification id is required")
		return 1
	}
	id := flags.Arg(0)

	ctx, cancel := c.Context()
	defer cancel()

	client, _, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	if _, err := client.SystemNotificationDelete(ctx, id); err != nil {
		ui.Error(fmt.Sprintf("error deleting system notification %q: %v", id, err))
		return 1
	}

	ui.Info(fmt.Sprintf("Deleted system notification %q", id))
	return 0
}
