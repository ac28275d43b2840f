package version

import (
	"github.com/openlumify/openlumify-admin/internal/cmd/base"
	"github.com/openlumify/openlumify-admin/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: openlumify-admin version

  Print the version of the admin client.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
