package ai

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
)

// ClaudeCommand copies a bundled document and prompt to the clipboard and
// opens a new chat
type ClaudeCommand struct {
	// Flags
	InputFile string
	Prompt    string
	CopyMode  string

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
}

// Register registers the command with cobra
func (c *ClaudeCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "claude",
		Aliases: []string{"c"},
		Short:   "Open a chat with project context",
		Long: `Copy the bundled document and/or the prompt to the clipboard and open a
new chat in the configured browser.

Example:
  hv ai claude                                  # Output file plus default prompt
  hv ai claude --copy-mode prompt --prompt "Review this"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.InputFile, "input-file", "", "Input file to send (default from config)")
	cmd.Flags().StringVar(&c.Prompt, "prompt", "", "Custom prompt (default from config)")
	cmd.Flags().StringVar(&c.CopyMode, "copy-mode", bundle.CopyBoth,
		"What to copy to the clipboard: "+strings.Join(bundle.CopyModes, ", "))

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *ClaudeCommand) Run(ctx context.Context) error {
	settings, err := c.Config.AI()
	if err != nil {
		return err
	}
	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}

	inputFile := c.InputFile
	if inputFile == "" {
		inputFile = settings.OutputFile
	}
	prompt := c.Prompt
	if prompt == "" {
		prompt = settings.DefaultPrompt
	}
	mode := c.CopyMode
	if mode == "" {
		mode = bundle.CopyBoth
	}

	return openChat(ctx, c.Desktop, settings, inputFile, prompt, mode)
}
