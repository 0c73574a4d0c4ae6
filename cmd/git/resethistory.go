package git

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/ui"
)

// ResetHistoryCommand replaces the whole history with a single initial commit
type ResetHistoryCommand struct {
	// Clients (can be mocked in tests)
	Git     *git.Client
	Confirm func(prompt string, def bool) bool
}

// Register registers the command with cobra
func (c *ResetHistoryCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "reset-history",
		Aliases: []string{"rh"},
		Short:   "Reset git history with a single initial commit",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.Git, err = common.InitGit()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *ResetHistoryCommand) Run(ctx context.Context) error {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	ui.Error("WARNING: This will irreversibly delete all commit history!")
	ui.Print("")
	if !c.Confirm("Are you absolutely sure you want to continue?", false) ||
		!c.Confirm("Last chance! This cannot be undone. Continue?", false) {
		ui.Warning("Operation cancelled")
		return nil
	}

	if _, err := c.Git.ResetHistory(git.InitialCommitMessage); err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	ui.Success("Successfully reset git history")
	return nil
}
