package slack

import (
	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
)

// Command is the parent command for the Slack subcommands
type Command struct {
	Config *config.Store
}

// Register registers the slack command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "slack",
		Short: "Slack operations",
		Long:  `Drive the Slack desktop app through its quick switcher (macOS only).`,
	}

	(&MsgCommand{Config: c.Config}).Register(cmd)
	(&GoCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}
