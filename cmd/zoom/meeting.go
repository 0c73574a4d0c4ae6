package zoom

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

// MeetingCommand joins a named meeting
type MeetingCommand struct {
	// Flags
	Meeting string
	Pick    bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
	Select  func(names []string) (int, error)
}

// Register registers the command with cobra
func (c *MeetingCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "meeting",
		Aliases: []string{"m"},
		Short:   "Join a specific Zoom meeting",
		Long: `Join a meeting whose id and password are stored under zoom.<name> in
credentials.yaml.

Example:
  hv zoom meeting              # The default meeting
  hv zoom meeting -m retro     # A named meeting
  hv zoom meeting --pick       # Pick from the configured meetings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Meeting, "meeting", "m", "", "Name of the meeting to join (default from config)")
	cmd.Flags().BoolVar(&c.Pick, "pick", false, "Pick the meeting interactively")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *MeetingCommand) Run(ctx context.Context) error {
	settings, err := c.Config.Zoom()
	if err != nil {
		return err
	}
	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}

	name := c.Meeting
	if c.Pick {
		names := c.Config.Credentials().Keys("zoom")
		if len(names) == 0 {
			return config.Errorf("zoom", "no meetings configured in %s", config.CredentialsFile)
		}
		if c.Select == nil {
			c.Select = func(names []string) (int, error) {
				return ui.Select(names, func(n string) string { return n }, nil)
			}
		}
		idx, err := c.Select(names)
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}
		name = names[idx]
	}
	if name == "" {
		name = settings.DefaultMeeting
	}

	return join(ctx, c.Config, c.Desktop, name)
}
