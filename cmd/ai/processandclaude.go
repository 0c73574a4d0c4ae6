package ai

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
)

// ProcessAndClaudeCommand bundles folders to the output file and opens a chat with it
type ProcessAndClaudeCommand struct {
	// Flags
	Folders        []string
	OverridePrompt string

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
	Confirm func(prompt string, def bool) bool
}

// Register registers the command with cobra
func (c *ProcessAndClaudeCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "process-and-claude",
		Aliases: []string{"pc", "process_and_claude"},
		Short:   "Bundle the project and open a chat with it",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVar(&c.Folders, "folders", []string{"."}, "Folder to process (repeatable)")
	cmd.Flags().StringVar(&c.OverridePrompt, "override-prompt", "", "Override the default prompt from config")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *ProcessAndClaudeCommand) Run(ctx context.Context) error {
	settings, err := c.Config.AI()
	if err != nil {
		return err
	}
	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}

	printer := &PrintProjectCommand{Folders: c.Folders, Config: c.Config, Confirm: c.Confirm}
	outputFile, err := printer.write()
	if err != nil {
		return err
	}

	prompt := c.OverridePrompt
	if prompt == "" {
		prompt = settings.DefaultPrompt
	}
	return openChat(ctx, c.Desktop, settings, outputFile, prompt, bundle.CopyBoth)
}
