// Package config loads the hv settings, command settings and credentials files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	VariablesFile   = "variables.yaml"
	CommandsFile    = "commands.yaml"
	CredentialsFile = "credentials.yaml"

	// EnvConfigDir overrides the config directory lookup
	EnvConfigDir = "HV_CONFIG_DIR"
)

// Error is a fatal configuration problem: a missing key, a missing credential
// or a malformed template.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a configuration Error for key
func Errorf(key, format string, args ...any) error {
	return &Error{Key: key, Err: fmt.Errorf(format, args...)}
}

// Duration handles YAML durations written as Go duration strings ("30s", "2m")
// or as numeric seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(v * float64(time.Second))
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
	return nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Store holds the parsed configuration files. It is read-only after Load.
type Store struct {
	dir         string
	variables   map[string]yaml.Node
	commands    map[string]CommandSettings
	credentials *Credentials
}

// Dir resolves the config directory: $HV_CONFIG_DIR, then $XDG_CONFIG_HOME/hv,
// then ~/.config/hv.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hv"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hv"), nil
}

// Load reads all config files from dir. An empty dir resolves through Dir.
// Missing files yield empty config; malformed files are errors.
func Load(dir string) (*Store, error) {
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return nil, err
		}
	}

	s := &Store{
		dir:       dir,
		variables: map[string]yaml.Node{},
		commands:  map[string]CommandSettings{},
	}

	if err := readYAML(filepath.Join(dir, VariablesFile), &s.variables); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, CommandsFile), &s.commands); err != nil {
		return nil, err
	}

	var creds map[string]map[string]yaml.Node
	if err := readYAML(filepath.Join(dir, CredentialsFile), &creds); err != nil {
		return nil, err
	}
	s.credentials = newCredentials(creds)

	return s, nil
}

// Empty returns a Store with no settings, as if the config directory were empty.
func Empty() *Store {
	return &Store{
		variables:   map[string]yaml.Node{},
		commands:    map[string]CommandSettings{},
		credentials: newCredentials(nil),
	}
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Path returns the directory the store was loaded from
func (s *Store) Path() string {
	return s.dir
}

// Section returns the named settings section, or an empty map when absent.
func (s *Store) Section(name string) map[string]any {
	out := map[string]any{}
	node, ok := s.variables[name]
	if !ok {
		return out
	}
	if err := node.Decode(&out); err != nil {
		return map[string]any{}
	}
	return out
}

// Decode decodes the named settings section into out. An absent section
// leaves out untouched, so callers set defaults before decoding.
func (s *Store) Decode(name string, out any) error {
	node, ok := s.variables[name]
	if !ok {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return &Error{Key: name, Err: err}
	}
	return nil
}

// Command returns the commands.yaml entry for a group
func (s *Store) Command(group string) (CommandSettings, bool) {
	cs, ok := s.commands[group]
	return cs, ok
}

// Credentials returns the credential store
func (s *Store) Credentials() *Credentials {
	return s.credentials
}
