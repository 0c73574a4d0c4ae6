package asana

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/asana"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// AllTasksCommand lists every open task of the project
type AllTasksCommand struct {
	Config *config.Store

	// Clients (can be mocked in tests)
	Client *asana.Client
}

// Register registers the command with cobra
func (c *AllTasksCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "all-tasks",
		Short: "List all tasks in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *AllTasksCommand) Run(ctx context.Context) error {
	client, settings, tasks, err := loadTasks(ctx, c.Config, c.Client, false, true)
	if err != nil {
		return err
	}
	c.Client = client

	ui.Print(ui.RenderTasks(tasks, settings.DefaultProjectGID, true))
	return nil
}
