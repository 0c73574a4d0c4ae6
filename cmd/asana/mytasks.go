package asana

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/asana"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// MyTasksCommand lists the tasks assigned to the configured user
type MyTasksCommand struct {
	// Flags
	IncludeDone bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Client *asana.Client
}

// Register registers the command with cobra
func (c *MyTasksCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "my-tasks",
		Short: "List my tasks in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&c.IncludeDone, "include-done", "d", false, "Include tasks in the Done section")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *MyTasksCommand) Run(ctx context.Context) error {
	client, settings, tasks, err := loadTasks(ctx, c.Config, c.Client, true, c.IncludeDone)
	if err != nil {
		return err
	}
	c.Client = client

	ui.Print(ui.RenderTasks(tasks, settings.DefaultProjectGID, false))
	return nil
}
