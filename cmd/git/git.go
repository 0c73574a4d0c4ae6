package git

import (
	"github.com/spf13/cobra"
)

// Command is the parent command for the git hygiene subcommands
type Command struct{}

// Register registers the git command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Git operations",
		Long:  `Commands for keeping branch history conventional and tidy.`,
	}

	(&CheckCommitsCommand{}).Register(cmd)
	(&ResetHistoryCommand{}).Register(cmd)
	(&SyncCommand{}).Register(cmd)
	(&SquashCommand{}).Register(cmd)

	parent.AddCommand(cmd)
}
