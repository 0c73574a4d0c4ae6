package ai

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// ErrAborted is returned when the user declines to bundle a sensitive folder
var ErrAborted = errors.New("aborted")

// PrintProjectCommand concatenates a project's text files into one document
type PrintProjectCommand struct {
	// Arguments
	Folders []string

	// Flags
	OutputFile  string
	OutputToCLI bool
	Ignore      []string

	Config *config.Store

	// Clients (can be mocked in tests)
	Confirm func(prompt string, def bool) bool
}

// Register registers the command with cobra
func (c *PrintProjectCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "print-project [folders...]",
		Aliases: []string{"pp", "print_project"},
		Short:   "Print project files for AI analysis",
		Long: `Concatenate the text files of one or more folders into a single document.
README.md, pyproject.toml and go.mod come first; every file is preceded by a
"*# path*" header. Paths matching ai.ignore_patterns (or --ignore) are skipped.

Example:
  hv ai print-project                     # Current directory to the output file
  hv ai pp src docs --output-to-cli       # Print instead
  hv ai pp --ignore "*.lock" --ignore tests`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Folders = args
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.OutputFile, "output-file", "", "Output file path (default from config)")
	cmd.Flags().BoolVar(&c.OutputToCLI, "output-to-cli", false, "Print output to the terminal instead of a file")
	cmd.Flags().StringArrayVar(&c.Ignore, "ignore", nil, "Additional pattern to ignore (repeatable)")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *PrintProjectCommand) Run(ctx context.Context) error {
	_, err := c.write()
	return err
}

// write builds the bundle and returns the file it was written to
func (c *PrintProjectCommand) write() (string, error) {
	settings, err := c.Config.AI()
	if err != nil {
		return "", err
	}
	if c.Confirm == nil {
		c.Confirm = ui.Confirm
	}

	folders := c.Folders
	if len(folders) == 0 {
		folders = []string{"."}
	}
	outputFile := c.OutputFile
	if outputFile == "" {
		outputFile = settings.OutputFile
	}

	for _, folder := range bundle.SensitiveFolders(folders, settings.WarningPaths) {
		ui.Warningf("Warning: Processing sensitive path: %s", folder)
		if !c.Confirm("Do you want to continue?", false) {
			return "", ErrAborted
		}
	}

	matcher, err := bundle.NewMatcher(append(append([]string{}, settings.IgnorePatterns...), c.Ignore...))
	if err != nil {
		return "", config.Errorf("ai.ignore_patterns", "%v", err)
	}

	result := bundle.Build(folders, bundle.Options{
		Ignore:         matcher,
		TextExtensions: settings.TextExtensions,
	})
	if err := emit(result, outputFile, c.OutputToCLI, "Project"); err != nil {
		return "", err
	}
	return outputFile, nil
}
