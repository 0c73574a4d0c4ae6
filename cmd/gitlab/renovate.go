package gitlab

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/gitlab"
	"github.com/hvanthou/hv/internal/ui"
)

// RenovateCommand lists open Renovate merge requests across the configured
// projects and merges them after confirmation
type RenovateCommand struct {
	// Flags
	NROs   []string
	Types  []string
	DryRun bool
	Yes    bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Client    gitlab.API
	Directory *gitlab.Directory
	Confirm   func(prompt string, def bool) bool
}

// Register registers the command with cobra
func (c *RenovateCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "renovate",
		Aliases: []string{"ren"},
		Short:   "Merge open Renovate merge requests",
		Long: `Find open Renovate merge requests in every project derived from the
NRO and type lists, show them grouped by project and merge them after
confirmation. Each merge request is approved first when needed.

Example:
  hv gitlab renovate                  # Default NROs and types
  hv gitlab renovate -n ab -n cd      # Only these NROs
  hv gitlab renovate -t dev --dry-run # List only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVarP(&c.NROs, "nro", "n", nil, "NRO to process (repeatable)")
	cmd.Flags().StringArrayVarP(&c.Types, "type", "t", nil, "Project type to process (repeatable)")
	cmd.Flags().BoolVar(&c.DryRun, "dry-run", false, "List merge requests without merging")
	cmd.Flags().BoolVarP(&c.Yes, "yes", "y", false, "Merge without asking for confirmation")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *RenovateCommand) Run(ctx context.Context) error {
	settings, err := c.Config.GitLab()
	if err != nil {
		return err
	}
	if c.Client == nil {
		client, _, err := common.InitGitLab(c.Config)
		if err != nil {
			return err
		}
		c.Client = client
	}
	if c.Directory == nil {
		c.Directory = gitlab.NewDirectory(c.Client)
	}
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	paths, err := common.GitLabProjects(settings).Resolve(
		common.Default(c.NROs, settings.DefaultNROs),
		common.Default(c.Types, settings.DefaultTypes),
	)
	if err != nil {
		return err
	}
	ui.Debugf("Resolved %d project paths", len(paths))

	ui.Info("Load all mr, can take up to a minute")
	fetcher := gitlab.NewFetcher(c.Directory, c.Client, ui.Reporter{})
	fetcher.BranchPrefix = settings.RenovatePrefix
	fetcher.MaxConcurrency = settings.MaxConcurrency
	mrs := fetcher.Fetch(ctx, paths)

	ui.Print(ui.RenderMergeRequests(mrs))
	if len(mrs) == 0 || c.DryRun {
		return nil
	}

	if !c.Yes && !c.Confirm(fmt.Sprintf("Merge %d merge requests?", len(mrs)), false) {
		ui.Info("Merge cancelled")
		return nil
	}

	pipeline := gitlab.NewMergePipeline(c.Client, ui.Reporter{})
	pipeline.MaxConcurrency = settings.MaxConcurrency
	summary := pipeline.Apply(ctx, mrs)

	ui.Print("")
	ui.Infof("Merged %d out of %d merge requests", summary.Merged, summary.Total)
	return nil
}
