package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

// Command is the parent command for the AI chat helpers
type Command struct {
	Config *config.Store
}

// Register registers the ai command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "AI-related tools and utilities",
		Long:  `Bundle project files into one document and hand it to an AI chat.`,
	}

	(&PrintProjectCommand{Config: c.Config}).Register(cmd)
	(&ClaudeCommand{Config: c.Config}).Register(cmd)
	(&ProcessAndClaudeCommand{Config: c.Config}).Register(cmd)
	(&DBTCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}

// emit prints a bundle or writes it to outputFile, reporting unreadable files
func emit(result bundle.Result, outputFile string, toCLI bool, label string) error {
	for _, err := range result.Errors {
		ui.Errorf("%v", err)
	}
	ui.Debugf("Bundled %d files", len(result.Files))

	if toCLI {
		ui.Print(result.Content)
		return nil
	}
	if err := bundle.WriteFile(outputFile, result.Content); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	ui.Successf("%s content written to: %s", label, outputFile)
	return nil
}

// openChat copies the envelope for inputFile to the clipboard and opens the
// chat page in the configured browser
func openChat(ctx context.Context, d *desktop.Desktop, settings config.AISettings, inputFile, prompt, mode string) error {
	if !bundle.ValidCopyMode(mode) {
		return fmt.Errorf("invalid copy mode %q: use prompt, file or both", mode)
	}

	content, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("error opening chat: %w", err)
	}
	payload := bundle.Envelope(mode, inputFile, string(content), prompt)

	if err := d.CopyToClipboard(payload); err != nil {
		ui.Warningf("%v", err)
		ui.Info("Here's your content to copy manually:")
		ui.Print(payload)
	} else {
		ui.Success("Content copied to clipboard")
	}

	fallback, err := d.OpenWith(ctx, settings.Browser, settings.ChatURL)
	if err != nil {
		return err
	}
	if fallback && d.IsMac() {
		ui.Warningf("Could not open %s, used the default browser", settings.Browser)
	}

	ui.Success("Opening chat...")
	ui.Print(ui.WarningStyle.Render("Instructions:"))
	ui.Printf("1. Content copied to clipboard (%s)\n", mode)
	ui.Print("2. Wait for the chat to load")
	ui.Print("3. Create a new chat")
	ui.Print("4. Paste (Cmd+V) the copied content")
	return nil
}
