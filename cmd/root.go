package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// newRootCmd builds the command tree for a loaded configuration
func newRootCmd(store *config.Store) *cobra.Command {
	var verbose bool
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "hv",
		Short: "Personal automation toolbox",
		Long: `hv bundles day-to-day automation: merging Renovate merge requests on
GitLab, listing GCloud policy tags, Asana task updates, Slack and Zoom
shortcuts, git history hygiene and AI chat helpers.

Settings are read from variables.yaml, commands.yaml and credentials.yaml in
the config directory ($HV_CONFIG_DIR, $XDG_CONFIG_HOME/hv or ~/.config/hv).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetVerbose(verbose)
			ui.Debugf("Config directory: %s", store.Path())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory")

	register(rootCmd, store)
	return rootCmd
}

// Execute loads the configuration, builds the command tree and runs it.
// This is called by main.main(). Any error is printed and exits with status 1.
func Execute(ctx context.Context) {
	if err := run(ctx, os.Args[1:]); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	store, err := config.Load(configDirArg(args))
	if err != nil {
		return err
	}

	rootCmd := newRootCmd(store)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// configDirArg finds --config-dir before cobra parses flags, since the
// configuration shapes the command tree
func configDirArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config-dir="); ok {
			return v
		}
		if arg == "--config-dir" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
