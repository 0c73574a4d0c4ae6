// Package gcloud wraps the gcloud CLI for Data Catalog policy tag discovery.
package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hvanthou/hv/internal/config"
)

// CredentialsEnv is the variable gcloud reads the service account key from
const CredentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"

// Runner executes a command with extra environment and returns its stdout
type Runner func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec, appending env to the current environment
func ExecRunner(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w\nstderr: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Taxonomy is a Data Catalog taxonomy
type Taxonomy struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// ID returns the last segment of the resource name
func (t Taxonomy) ID() string {
	return lastSegment(t.Name)
}

// PolicyTag is a Data Catalog policy tag
type PolicyTag struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// ID returns the last segment of the resource name
func (p PolicyTag) ID() string {
	return lastSegment(p.Name)
}

// TagLister lists taxonomies and their policy tags
type TagLister interface {
	ListTaxonomies(ctx context.Context, project, location string) ([]Taxonomy, error)
	ListPolicyTags(ctx context.Context, taxonomy, location string) ([]PolicyTag, error)
}

// Client runs gcloud authenticated with a service account key file
type Client struct {
	run Runner
	env []string
}

var _ TagLister = (*Client)(nil)

// NewClient creates a client. An empty credentials file is a configuration error.
func NewClient(credentialsFile string, run Runner) (*Client, error) {
	if credentialsFile == "" {
		return nil, &config.Error{Key: "gcloud.credentials_file", Err: config.ErrMissingCredential}
	}
	if run == nil {
		run = ExecRunner
	}
	return &Client{
		run: run,
		env: []string{CredentialsEnv + "=" + ExpandHome(credentialsFile)},
	}, nil
}

// ListTaxonomies lists the taxonomies of a project
func (c *Client) ListTaxonomies(ctx context.Context, project, location string) ([]Taxonomy, error) {
	out, err := c.run(ctx, c.env, "gcloud", "data-catalog", "taxonomies", "list",
		"--project="+project,
		"--location="+location,
		"--format=json",
	)
	if err != nil {
		return nil, err
	}

	var taxonomies []Taxonomy
	if err := json.Unmarshal(out, &taxonomies); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomies: %w", err)
	}
	return taxonomies, nil
}

// ListPolicyTags lists the policy tags of a taxonomy resource name
func (c *Client) ListPolicyTags(ctx context.Context, taxonomy, location string) ([]PolicyTag, error) {
	out, err := c.run(ctx, c.env, "gcloud", "data-catalog", "taxonomies", "policy-tags", "list",
		"--taxonomy="+taxonomy,
		"--location="+location,
		"--format=json",
	)
	if err != nil {
		return nil, err
	}

	var tags []PolicyTag
	if err := json.Unmarshal(out, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse policy tags: %w", err)
	}
	return tags, nil
}

// ExpandHome replaces $HOME and a leading ~ with the user's home directory
func ExpandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	path = strings.ReplaceAll(path, "$HOME", home)
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
