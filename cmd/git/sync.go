package git

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/ui"
)

// SyncCommand checks out the base branch and pulls with rebase
type SyncCommand struct {
	// Flags
	Base string

	// Clients (can be mocked in tests)
	Git *git.Client
}

// Register registers the command with cobra
func (c *SyncCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync with the base branch (checkout and pull --rebase)",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.Git, err = common.InitGit()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.Base, "base", "main", "Branch to sync with")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *SyncCommand) Run(ctx context.Context) error {
	if err := c.Git.CheckoutBranch(c.Base); err != nil {
		return err
	}
	if err := c.Git.PullRebase(); err != nil {
		return err
	}
	ui.Successf("Successfully synced with %s branch", c.Base)
	return nil
}
