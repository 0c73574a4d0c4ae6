package gitlab

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/gitlab"
	"github.com/hvanthou/hv/internal/ui"
)

// ReviewsCommand lists open merge requests where the user is a reviewer
type ReviewsCommand struct {
	// Flags
	Open bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Client  gitlab.ReviewLister
	Desktop *desktop.Desktop
	Select  func(mrs []gitlab.MergeRequest) (int, error)
}

// Register registers the command with cobra
func (c *ReviewsCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"rev"},
		Short:   "List merge requests waiting for your review",
		Long: `List open merge requests where you are a reviewer, excluding bot
branches and projects outside the configured reviewer path.

Example:
  hv gitlab reviews         # List
  hv gitlab reviews --open  # Pick one and open it in the browser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.Open, "open", false, "Pick a merge request and open it in the browser")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *ReviewsCommand) Run(ctx context.Context) error {
	settings, err := c.Config.GitLab()
	if err != nil {
		return err
	}
	if settings.ReviewerUsername == "" {
		return config.Errorf("gitlab.default_reviewer_username", "no reviewer username configured")
	}
	if c.Client == nil {
		client, _, err := common.InitGitLab(c.Config)
		if err != nil {
			return err
		}
		c.Client = client
	}

	all, err := c.Client.ListReviewMergeRequests(ctx, settings.ReviewerUsername)
	if err != nil {
		return fmt.Errorf("failed to get MRs: %w", err)
	}

	mrs := gitlab.ReviewFilter{
		BotPrefix: settings.RenovatePrefix,
		Path:      settings.ReviewerPath,
	}.Apply(all)

	ui.Print(ui.RenderReviews(mrs))
	if !c.Open || len(mrs) == 0 {
		return nil
	}

	if c.Select == nil {
		c.Select = selectMergeRequest
	}
	idx, err := c.Select(mrs)
	if err != nil {
		return fmt.Errorf("failed to select merge request: %w", err)
	}
	if idx < 0 {
		return nil
	}

	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}
	mr := mrs[idx]
	if err := c.Desktop.OpenURL(mr.WebURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	ui.Successf("Opened %s in browser", mr.References.Full)
	return nil
}

func selectMergeRequest(mrs []gitlab.MergeRequest) (int, error) {
	return ui.Select(mrs,
		func(mr gitlab.MergeRequest) string {
			return fmt.Sprintf("%s  %s", mr.References.Full, mr.Title)
		},
		func(mr gitlab.MergeRequest) string {
			return fmt.Sprintf("%s\n\nAuthor: %s\nBranch: %s -> %s\n%s",
				mr.Title, mr.Author.Name, mr.SourceBranch, mr.TargetBranch, mr.WebURL)
		},
	)
}
