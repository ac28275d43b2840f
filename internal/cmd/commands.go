package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/openlumify/openlumify-admin/internal/cmd/base"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/graph"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/notification"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/plugins"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/user"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/version"
	"github.com/openlumify/openlumify-admin/internal/cmd/commands/workspace"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"vertex": func() (cli.Command, error) {
			return graph.NewVertexCommand(b), nil
		},
		"vertex delete": func() (cli.Command, error) {
			return graph.NewVertexDeleteCommand(b), nil
		},
		"edge": func() (cli.Command, error) {
			return graph.NewEdgeCommand(b), nil
		},
		"edge delete": func() (cli.Command, error) {
			return graph.NewEdgeDeleteCommand(b), nil
		},
		"plugins": func() (cli.Command, error) {
			return &plugins.Command{Command: b}, nil
		},
		"notification": func() (cli.Command, error) {
			return &notification.Command{Command: b}, nil
		},
		"notification create": func() (cli.Command, error) {
			return &notification.CreateCommand{Command: b}, nil
		},
		"notification delete": func() (cli.Command, error) {
			return &notification.DeleteCommand{Command: b}, nil
		},
		"user": func() (cli.Command, error) {
			return &user.Command{Command: b}, nil
		},
		"user delete": func() (cli.Command, error) {
			return &user.DeleteCommand{Command: b}, nil
		},
		"workspace": func() (cli.Command, error) {
			return &workspace.Command{Command: b}, nil
		},
		"workspace share": func() (cli.Command, error) {
			return &workspace.ShareCommand{Command: b}, nil
		},
		"workspace import": func() (cli.Command, error) {
			return &workspace.ImportCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
