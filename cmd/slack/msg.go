package slack

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

// MsgCommand sends a direct message through the Slack app
type MsgCommand struct {
	// Arguments
	Text string

	// Flags
	User string

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
}

// Register registers the command with cobra
func (c *MsgCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "msg <text>",
		Aliases: []string{"m"},
		Short:   "Send a message to a user",
		Long: `Open a DM with the user through the Slack quick switcher and send the text.

Example:
  hv slack msg "standup in 5"           # Default user
  hv slack msg -u jdoe "lunch?"         # Someone else`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Text = strings.Join(args, " ")
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.User, "user", "u", "", "User to message (default from config)")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *MsgCommand) Run(ctx context.Context) error {
	settings, err := c.Config.Slack()
	if err != nil {
		return err
	}
	user := c.User
	if user == "" {
		user = settings.DefaultUser
	}
	if user == "" {
		return config.Errorf("slack.default_user", "no user given and none configured")
	}
	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}

	if err := c.Desktop.RunAppleScript(ctx, desktop.SlackMessageScript(user, c.Text)); err != nil {
		return err
	}
	ui.Success("Message sent")
	return nil
}
