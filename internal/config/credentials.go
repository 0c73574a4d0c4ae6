package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned when a required credential is absent
var ErrMissingCredential = errors.New("missing credential")

// Credentials resolves service credentials. Environment variables named
// HV_<SERVICE>_<KEY> take precedence over credentials.yaml.
type Credentials struct {
	entries map[string]map[string]yaml.Node
	getenv  func(string) string
}

func newCredentials(entries map[string]map[string]yaml.Node) *Credentials {
	if entries == nil {
		entries = map[string]map[string]yaml.Node{}
	}
	return &Credentials{entries: entries, getenv: os.Getenv}
}

// EnvName returns the environment variable that overrides service.key
func EnvName(service, key string) string {
	name := "HV_" + service + "_" + key
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}

// Get returns a scalar credential
func (c *Credentials) Get(service, key string) (string, bool) {
	if v := c.getenv(EnvName(service, key)); v != "" {
		return v, true
	}

	node, ok := c.lookup(service, key)
	if !ok || node.Kind != yaml.ScalarNode || node.Value == "" {
		return "", false
	}
	return node.Value, true
}

// Require returns a scalar credential or a configuration error wrapping ErrMissingCredential
func (c *Credentials) Require(service, key string) (string, error) {
	v, ok := c.Get(service, key)
	if !ok {
		return "", &Error{
			Key: service + "." + key,
			Err: fmt.Errorf("%w (set it in %s or %s)", ErrMissingCredential, CredentialsFile, EnvName(service, key)),
		}
	}
	return v, nil
}

// Decode decodes a structured credential entry (e.g. a zoom meeting) into out
func (c *Credentials) Decode(service, key string, out any) error {
	node, ok := c.lookup(service, key)
	if !ok {
		return &Error{Key: service + "." + key, Err: ErrMissingCredential}
	}
	if err := node.Decode(out); err != nil {
		return &Error{Key: service + "." + key, Err: err}
	}
	return nil
}

// Keys lists the entries configured for a service
func (c *Credentials) Keys(service string) []string {
	entries := c.entries[service]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (c *Credentials) lookup(service, key string) (yaml.Node, bool) {
	entries, ok := c.entries[service]
	if !ok {
		return yaml.Node{}, false
	}
	node, ok := entries[key]
	return node, ok
}
