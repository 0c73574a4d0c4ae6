package slack

import (
	"context"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

// GoCommand jumps to a channel, resolving configured channel aliases
type GoCommand struct {
	// Arguments
	Channel string

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
	Select  func(aliases []string, channels map[string]string) (int, error)
}

// Register registers the command with cobra
func (c *GoCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "go [channel]",
		Aliases: []string{"g"},
		Short:   "Go to a channel",
		Long: `Open a channel through the Slack quick switcher. The name may be an
alias from slack.channels. Without a name, pick one of the aliases.

Example:
  hv slack go team      # Alias resolved from config
  hv slack go           # Pick from configured channels`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Channel = args[0]
			}
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *GoCommand) Run(ctx context.Context) error {
	settings, err := c.Config.Slack()
	if err != nil {
		return err
	}

	alias := c.Channel
	if alias == "" {
		aliases := slices.Sorted(maps.Keys(settings.Channels))
		if len(aliases) == 0 {
			return config.Errorf("slack.channels", "no channel given and none configured")
		}
		if c.Select == nil {
			c.Select = selectChannel
		}
		idx, err := c.Select(aliases, settings.Channels)
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}
		alias = aliases[idx]
	}

	channel := alias
	if name, ok := settings.Channels[alias]; ok {
		channel = name
	}

	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}
	if err := c.Desktop.RunAppleScript(ctx, desktop.SlackChannelScript(channel)); err != nil {
		return err
	}
	ui.Successf("Navigated to #%s", channel)
	return nil
}

func selectChannel(aliases []string, channels map[string]string) (int, error) {
	return ui.Select(aliases,
		func(alias string) string { return alias + "  #" + channels[alias] },
		nil,
	)
}
