package gcloud

import (
	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
)

// Command is the parent command for the GCloud subcommands
type Command struct {
	Config *config.Store
}

// Register registers the gcloud command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "gcloud",
		Short: "Google Cloud operations",
	}

	(&PolicyTagsCommand{Config: c.Config}).Register(cmd)
	(&ProjectsCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}
