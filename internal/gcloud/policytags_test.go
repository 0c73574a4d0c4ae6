package gcloud

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/projects"
)

// fakeGcloud answers taxonomy and policy tag listings from canned JSON
type fakeGcloud struct {
	mu         sync.Mutex
	calls      [][]string
	envs       [][]string
	taxonomies map[string]string
	tags       map[string]string
}

func (f *fakeGcloud) run(_ context.Context, env []string, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.envs = append(f.envs, env)
	f.mu.Unlock()

	flags := map[string]string{}
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			flags[strings.TrimPrefix(k, "--")] = v
		}
	}

	if args[2] == "list" {
		out, ok := f.taxonomies[flags["project"]]
		if !ok {
			return nil, errors.New("PERMISSION_DENIED")
		}
		return []byte(out), nil
	}
	out, ok := f.tags[flags["taxonomy"]]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy %s", flags["taxonomy"])
	}
	return []byte(out), nil
}

type recordingReporter struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (r *recordingReporter) Successf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestCollector(t *testing.T) {
	fake := &fakeGcloud{
		taxonomies: map[string]string{
			"int-ab-dev-pt": `[{"name": "projects/int-ab-dev-pt/locations/eu/taxonomies/111", "displayName": "PII-ab"}]`,
		},
		tags: map[string]string{
			"projects/int-ab-dev-pt/locations/eu/taxonomies/111": `[
				{"name": "projects/int-ab-dev-pt/locations/eu/taxonomies/111/policyTags/1", "displayName": "Email"},
				{"name": "projects/int-ab-dev-pt/locations/eu/taxonomies/111/policyTags/2", "displayName": "Phone"}
			]`,
		},
	}
	client, err := NewClient("/keys/sa.json", fake.run)
	require.NoError(t, err)

	reporter := &recordingReporter{}
	c := &Collector{
		Lister:      client,
		Projects:    projects.Resolver{Template: "{prefix}-{nro}-dev-{type}", Vars: map[string]string{"prefix": "int"}},
		ProjectType: "pt",
		Location:    "eu",
		Reporter:    reporter,
	}

	got := c.Collect(context.Background(), []string{"ab", "cd"})

	assert.Equal(t, PolicyTags{
		"ab": {
			"pii": {
				"Email": "projects/int-ab-pt/locations/eu/taxonomies/111/policyTags/1",
				"Phone": "projects/int-ab-pt/locations/eu/taxonomies/111/policyTags/2",
			},
		},
	}, got)
	assert.Equal(t, []string{"Fetched policy tags for ab"}, reporter.success)
	require.Len(t, reporter.errors, 1)
	assert.Contains(t, reporter.errors[0], "cd")
	assert.Contains(t, reporter.errors[0], "PERMISSION_DENIED")

	for _, env := range fake.envs {
		assert.Equal(t, []string{CredentialsEnv + "=/keys/sa.json"}, env)
	}
	assert.Contains(t, fake.calls, []string{
		"gcloud", "data-catalog", "taxonomies", "list",
		"--project=int-ab-dev-pt", "--location=eu", "--format=json",
	})
	assert.Contains(t, fake.calls, []string{
		"gcloud", "data-catalog", "taxonomies", "policy-tags", "list",
		"--taxonomy=projects/int-ab-dev-pt/locations/eu/taxonomies/111", "--location=eu", "--format=json",
	})
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", nil)
	assert.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "keys", "sa.json"), ExpandHome("~/keys/sa.json"))
	assert.Equal(t, home+"/keys/sa.json", ExpandHome("$HOME/keys/sa.json"))
	assert.Equal(t, "/abs/sa.json", ExpandHome("/abs/sa.json"))
}

func TestResourceIDs(t *testing.T) {
	assert.Equal(t, "111", Taxonomy{Name: "projects/p/locations/eu/taxonomies/111"}.ID())
	assert.Equal(t, "9", PolicyTag{Name: "projects/p/locations/eu/taxonomies/1/policyTags/9"}.ID())
	assert.Equal(t, "bare", PolicyTag{Name: "bare"}.ID())
}
