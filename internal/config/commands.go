package config

// CommandSettings is one commands.yaml entry, keyed by group name.
//
//	gitlab:
//	  alias: [g]
//	  default_command: renovate
//	  default_params:
//	    nro: [ab, cd]
//	    dry_run: true
type CommandSettings struct {
	Alias          []string       `yaml:"alias"`
	DefaultCommand string         `yaml:"default_command"`
	DefaultParams  map[string]any `yaml:"default_params"`
}
