package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	aicmd "github.com/hvanthou/hv/cmd/ai"
	asanacmd "github.com/hvanthou/hv/cmd/asana"
	gcloudcmd "github.com/hvanthou/hv/cmd/gcloud"
	gitcmd "github.com/hvanthou/hv/cmd/git"
	gitlabcmd "github.com/hvanthou/hv/cmd/gitlab"
	slackcmd "github.com/hvanthou/hv/cmd/slack"
	zoomcmd "github.com/hvanthou/hv/cmd/zoom"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// argsParam is the default_params key holding positional arguments
const argsParam = "args"

// group is one entry of the static command registry
type group struct {
	name           string
	aliases        []string
	defaultCommand string
	command        Command
}

// groups lists every command group compiled into hv
func groups(store *config.Store) []group {
	return []group{
		{name: "gitlab", aliases: []string{"gl"}, command: &gitlabcmd.Command{Config: store}},
		{name: "gcloud", aliases: []string{"gc"}, command: &gcloudcmd.Command{Config: store}},
		{name: "asana", aliases: []string{"as"}, command: &asanacmd.Command{Config: store}},
		{name: "slack", aliases: []string{"sl"}, command: &slackcmd.Command{Config: store}},
		{name: "zoom", aliases: []string{"z"}, defaultCommand: "daily", command: &zoomcmd.Command{Config: store}},
		{name: "ai", command: &aicmd.Command{Config: store}},
		{name: "git", command: &gitcmd.Command{}},
	}
}

// register adds every group to root, applying commands.yaml aliases and default commands
func register(root *cobra.Command, store *config.Store) {
	for _, g := range groups(store) {
		g.command.Register(root)

		cmd := findCommand(root, g.name)
		if cmd == nil {
			continue
		}

		settings, _ := store.Command(g.name)
		cmd.Aliases = mergeAliases(g.aliases, settings.Alias)

		name := g.defaultCommand
		if settings.DefaultCommand != "" {
			name = settings.DefaultCommand
		}
		installDefault(cmd, name, settings.DefaultParams)
	}
}

// installDefault makes a bare group invocation run its default subcommand
func installDefault(group *cobra.Command, name string, params map[string]any) {
	group.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		if name == "" {
			return cmd.Help()
		}

		sub := findCommand(cmd, name)
		if sub == nil || sub.RunE == nil {
			return config.Errorf("commands."+cmd.Name()+".default_command", "%s has no command %q", cmd.Name(), name)
		}

		subArgs, err := applyParams(sub, params)
		if err != nil {
			return config.Errorf("commands."+cmd.Name()+".default_params", "%v", err)
		}

		if err := sub.ValidateRequiredFlags(); err != nil {
			ui.Warningf("Required parameter for %s.%s has no default value: %v", cmd.Name(), name, err)
			return nil
		}
		if err := sub.ValidateArgs(subArgs); err != nil {
			ui.Warningf("Required parameter for %s.%s has no default value: %v", cmd.Name(), name, err)
			return nil
		}

		sub.SetContext(cmd.Context())
		if sub.PreRunE != nil {
			if err := sub.PreRunE(sub, subArgs); err != nil {
				return err
			}
		}
		return sub.RunE(sub, subArgs)
	}
}

// applyParams sets flags from default_params. Keys use snake_case or kebab-case;
// list values set a repeatable flag once per element. The "args" key supplies
// positional arguments.
func applyParams(cmd *cobra.Command, params map[string]any) ([]string, error) {
	var args []string
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		values := paramValues(params[key])
		if key == argsParam {
			args = values
			continue
		}

		flag := strings.ReplaceAll(key, "_", "-")
		if cmd.Flags().Lookup(flag) == nil {
			return nil, fmt.Errorf("%s has no parameter %q", cmd.Name(), key)
		}
		for _, v := range values {
			if err := cmd.Flags().Set(flag, v); err != nil {
				return nil, fmt.Errorf("invalid value %q for %s: %w", v, key, err)
			}
		}
	}
	return args, nil
}

func paramValues(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return c
		}
	}
	return nil
}

func mergeAliases(static, configured []string) []string {
	out := slices.Clone(static)
	for _, a := range configured {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}
