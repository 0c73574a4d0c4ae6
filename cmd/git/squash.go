package git

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/ui"
)

// SquashCommand collapses every commit of the branch into one
type SquashCommand struct {
	// Flags
	Message string
	Base    string

	// Clients (can be mocked in tests)
	Git     *git.Client
	Confirm func(prompt string, def bool) bool
	Prompt  func(prompt, def string) string
}

// Register registers the command with cobra
func (c *SquashCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "squash",
		Short: "Squash all commits from the current branch into one",
		Long: `Soft reset to the merge base with the base branch and commit everything
as a single commit. Without --message, the last commit subject is offered
as the default.

Example:
  hv git squash                          # Prompt for the message
  hv git squash -m "feat: add exports"   # Use this message`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			c.Git, err = common.InitGit()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Message, "message", "m", "", "Commit message for the squashed commit")
	cmd.Flags().StringVar(&c.Base, "base", "main", "Base branch to compare against")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *SquashCommand) Run(ctx context.Context) error {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}
	if c.Prompt == nil {
		c.Prompt = ui.Prompt
	}

	branch, err := c.Git.GetCurrentBranch()
	if err != nil {
		return err
	}
	if branch == c.Base {
		return fmt.Errorf("cannot squash when on %s branch", c.Base)
	}

	commits, err := c.Git.BranchCommits(c.Base)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		ui.Warning("No commits to squash")
		return nil
	}

	message := c.Message
	if message == "" {
		ui.Print("")
		message = c.Prompt("Enter commit message", commits[len(commits)-1].Subject)
	}
	if !git.IsConventional(message) {
		ui.Print("")
		if c.Confirm("Message doesn't follow conventional format. Add 'fix:' prefix?", false) {
			message = git.FixMessage(message)
		}
	}

	ui.Print("")
	if !c.Confirm(fmt.Sprintf("This will squash %d commits into one. Continue?", len(commits)), false) {
		ui.Warning("Operation cancelled")
		return nil
	}

	if _, err := c.Git.Squash(c.Base, message); err != nil {
		return fmt.Errorf("failed to squash: %w", err)
	}
	ui.Successf("Successfully squashed %d commits into one", len(commits))
	return nil
}
