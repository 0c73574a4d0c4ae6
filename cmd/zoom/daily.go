package zoom

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
)

const dailyMeeting = "daily"

// DailyCommand joins the daily meeting
type DailyCommand struct {
	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
}

// Register registers the command with cobra
func (c *DailyCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Join the daily Zoom meeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *DailyCommand) Run(ctx context.Context) error {
	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}
	return join(ctx, c.Config, c.Desktop, dailyMeeting)
}
