package gitlab

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/fanout"
	"github.com/hvanthou/hv/internal/gitlab"
	"github.com/hvanthou/hv/internal/ui"
)

// CacheCommand shows and manages the project id cache
type CacheCommand struct {
	// Flags
	Clear bool
	Warm  bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Client    gitlab.ProjectLookup
	Directory *gitlab.Directory
}

// Register registers the command with cobra
func (c *CacheCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show project id cache statistics",
		Long: `Show hit, miss and size counters of the project id cache.

Example:
  hv gitlab cache --warm   # Resolve the configured projects first
  hv gitlab cache --clear  # Drop every cached entry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&c.Clear, "clear", "c", false, "Clear the cache")
	cmd.Flags().BoolVarP(&c.Warm, "warm", "w", false, "Resolve the configured project paths first")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *CacheCommand) Run(ctx context.Context) error {
	if c.Warm && c.Directory == nil {
		if err := c.initDirectory(); err != nil {
			return err
		}
	}
	if c.Directory == nil {
		c.Directory = gitlab.NewDirectory(nil)
	}

	if c.Warm {
		settings, err := c.Config.GitLab()
		if err != nil {
			return err
		}
		paths, err := common.GitLabProjects(settings).Resolve(settings.DefaultNROs, settings.DefaultTypes)
		if err != nil {
			return err
		}
		fanout.Each(ctx, paths, settings.MaxConcurrency, func(ctx context.Context, path string) {
			if _, err := c.Directory.Resolve(ctx, path); err != nil {
				ui.Warningf("Could not find project: %s", path)
			}
		})
	}

	if c.Clear {
		c.Directory.Clear()
		ui.Success("Cache cleared")
	}

	ui.Print(ui.RenderCacheStats(c.Directory.Stats()))
	return nil
}

func (c *CacheCommand) initDirectory() error {
	if c.Client == nil {
		client, _, err := common.InitGitLab(c.Config)
		if err != nil {
			return err
		}
		c.Client = client
	}
	c.Directory = gitlab.NewDirectory(c.Client)
	return nil
}
