package graph

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
	"github.com/openlumify/openlumify-admin/pkg/admin"
	"github.com/openlumify/openlumify-admin/pkg/transport"
)

// element describes the graph element kind a delete command operates on.
type element struct {
	name   string
	delete func(c *admin.Client, ctx context.Context, id, workspaceID string) (string, error)
}

var (
	vertex = element{name: "vertex", delete: (*admin.Client).VertexDelete}
	edge   = element{name: "edge", delete: (*admin.Client).EdgeDelete}
)

// GroupCommand is the parent of the "vertex" and "edge" subcommands.
type GroupCommand struct {
	*base.Command

	kind element
}

// NewVertexCommand returns the "vertex" command group.
func NewVertexCommand(b *base.Command) *GroupCommand {
	return &GroupCommand{Command: b, kind: vertex}
}

// NewEdgeCommand returns the "edge" command group.
func NewEdgeCommand(b *base.Command) *GroupCommand {
	return &GroupCommand{Command: b, kind: edge}
}

func (c *GroupCommand) Synopsis() string {
	return fmt.Sprintf("Administer graph %ss", c.kind.name)
}

func (c *GroupCommand) Help() string {
	return fmt.Sprintf(`Usage: openlumify-admin %s <subcommand> [options] [args]

  This command groups subcommands for administering graph %ss.`,
		c.kind.name, c.kind.name)
}

func (c *GroupCommand) Run(args []string) int {
	return cli.RunResultHelp
}

// DeleteCommand deletes one or more vertices or edges.
type DeleteCommand struct {
	*base.Command

	kind element

	flagWorkspaceID string
	flagParallel    int
	flagVerbose     bool
}

// NewVertexDeleteCommand returns "vertex delete".
func NewVertexDeleteCommand(b *base.Command) *DeleteCommand {
	return &DeleteCommand{Command: b, kind: vertex}
}

// NewEdgeDeleteCommand returns "edge delete".
func NewEdgeDeleteCommand(b *base.Command) *DeleteCommand {
	return &DeleteCommand{Command: b, kind: edge}
}

func (c *DeleteCommand) Synopsis() string {
	return fmt.Sprintf("Delete %ss from the graph", c.kind.name)
}

func (c *DeleteCommand) Help() string {
	return fmt.Sprintf(`Usage: openlumify-admin %s delete [options] <%s-id>...

  Delete one or more %ss. Deletes run concurrently; the command fails if any
  of them fails.`, c.kind.name, c.kind.name, c.kind.name) +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet(c.kind.name+" delete", flag.ContinueOnError))

	c.ClientFlags(f)
	f.StringVar(
		&c.flagWorkspaceID, "workspace-id", "",
		"Workspace to delete from. Defaults to workspace_id from the config.",
	)
	f.IntVar(
		&c.flagParallel, "parallel", 4,
		"Maximum number of concurrent delete requests.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Print the server response for each delete.",
	)

	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ids := flags.Args()
	if len(ids) == 0 {
		ui.Error(fmt.Sprintf("at least one %s id is required", c.kind.name))
		return 1
	}
	if c.flagParallel < 1 {
		ui.Error("parallel must be at least 1")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, cfg, cleanup, err := c.Client(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	defer cleanup()

	workspaceID := c.flagWorkspaceID
	if workspaceID == "" {
		workspaceID = cfg.WorkspaceID
	}
	if workspaceID == "" {
		ui.Error("workspace-id flag or workspace_id config is required")
		return 1
	}

	sem := make(chan struct{}, c.flagParallel)
	pending := make([]*transport.Pending[string], len(ids))
	for i, id := range ids {
		id := id
		pending[i] = transport.Go(ctx, func(ctx context.Context) (string, error) {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return "", ctx.Err()
			}
			defer func() { <-sem }()

			return c.kind.delete(client, ctx, id, workspaceID)
		})
	}

	var failed int
	for i, p := range pending {
		text, err := p.Wait(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("error deleting %s %q: %v", c.kind.name, ids[i], err))
			failed++
			continue
		}

		ui.Info(fmt.Sprintf("Deleted %s %q", c.kind.name, ids[i]))
		if c.flagVerbose && strings.TrimSpace(text) != "" {
			ui.Output(text)
		}
	}

	if failed > 0 {
		ui.Error(fmt.Sprintf("%d of %d deletes failed", failed, len(ids)))
		return 1
	}

	return 0
}
