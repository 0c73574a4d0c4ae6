package gitlab

import (
	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
)

// Command is the parent command for the GitLab subcommands
type Command struct {
	Config *config.Store
}

// Register registers the gitlab command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "gitlab",
		Short: "GitLab operations",
		Long:  `Commands for bulk-merging bot merge requests and listing pending reviews.`,
	}

	(&RenovateCommand{Config: c.Config}).Register(cmd)
	(&ReviewsCommand{Config: c.Config}).Register(cmd)
	(&CacheCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}
