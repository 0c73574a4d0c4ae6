package ai

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
)

// DBTCommand bundles the models, macros and analyses of dbt projects
type DBTCommand struct {
	// Flags
	Folders        []string
	OutputFile     string
	OutputToCLI    bool
	OverridePrompt string

	Config *config.Store

	// Clients (can be mocked in tests)
	Desktop *desktop.Desktop
}

// Register registers the command with cobra
func (c *DBTCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "dbt",
		Short: "Process dbt project files for AI analysis",
		Long: `Bundle the .sql, .yml and .yaml files under models, macros and analyses
(skipping .venv, target and dbt_packages) and open a chat with them unless
--output-to-cli is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVar(&c.Folders, "folders", []string{"."}, "dbt project folder to process (repeatable)")
	cmd.Flags().StringVar(&c.OutputFile, "output-file", "", "Output file path (default from config)")
	cmd.Flags().BoolVar(&c.OutputToCLI, "output-to-cli", false, "Print output to the terminal instead of a file")
	cmd.Flags().StringVar(&c.OverridePrompt, "override-prompt", "", "Override the default prompt from config")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *DBTCommand) Run(ctx context.Context) error {
	settings, err := c.Config.AI()
	if err != nil {
		return err
	}

	folders := c.Folders
	if len(folders) == 0 {
		folders = []string{"."}
	}
	outputFile := c.OutputFile
	if outputFile == "" {
		outputFile = settings.OutputFile
	}

	if err := emit(bundle.BuildDBT(folders), outputFile, c.OutputToCLI, "DBT"); err != nil {
		return err
	}
	if c.OutputToCLI {
		return nil
	}

	if c.Desktop == nil {
		c.Desktop = desktop.New()
	}
	prompt := c.OverridePrompt
	if prompt == "" {
		prompt = settings.DefaultPrompt
	}
	return openChat(ctx, c.Desktop, settings, outputFile, prompt, bundle.CopyBoth)
}
