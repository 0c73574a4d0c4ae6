package git

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/ui"
)

// CheckCommitsCommand finds non-conventional commits on the branch and
// offers to reword them with a "fix: " prefix
type CheckCommitsCommand struct {
	// Flags
	Base string

	// Clients (can be mocked in tests)
	Git     *git.Client
	Confirm func(prompt string, def bool) bool
}

// Register registers the command with cobra
func (c *CheckCommitsCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check-commits",
		Short: "Check and fix commits that don't follow the conventional format",
		Long: `List the commits in <base>..HEAD whose subject is not a conventional
commit (feat, fix or chore) and offer to reword each one with a "fix: "
prefix. Rewording rebuilds the branch with the original trees and authors.`,
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

	cmd.Flags().StringVar(&c.Base, "base", "main", "Base branch to compare against")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *CheckCommitsCommand) Run(ctx context.Context) error {
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	commits, err := c.Git.BranchCommits(c.Base)
	if err != nil {
		return err
	}
	invalid := git.InvalidCommits(commits)
	if len(invalid) == 0 {
		ui.Success("All commits follow conventional format")
		return nil
	}

	ui.Print("")
	ui.Warning("Found commits not following conventional format:")
	for _, commit := range invalid {
		ui.Printf("%s %s\n", ui.ErrorStyle.Render(commit.ShortHash()), commit.Subject)
	}

	ui.Print("")
	if !c.Confirm("Would you like to fix these commits?", false) {
		return nil
	}

	messages := map[string]string{}
	for _, commit := range invalid {
		msg := git.FixMessage(commit.Subject)
		ui.Print("")
		if c.Confirm(fmt.Sprintf("Amend commit %s with message: %s?", commit.ShortHash(), msg), false) {
			ui.Print(ui.Dim(fmt.Sprintf("Current: %s\nNew: %s", commit.Subject, msg)))
			messages[commit.Hash] = msg
		}
	}
	if len(messages) == 0 {
		return nil
	}

	head, err := c.Git.Reword(c.Base, messages)
	if err != nil {
		return fmt.Errorf("failed to reword commits: %w", err)
	}
	ui.Successf("Successfully amended %d commits (HEAD is now %s)", len(messages), git.Commit{Hash: head}.ShortHash())
	return nil
}
