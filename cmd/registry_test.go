package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

const testVariables = `gitlab:
  default_nros: [zz]
  default_types: [dev]
gcloud:
  project_prefix: acme
  project_template: "{prefix}-{nro}-{type}"
  project_types: [raw]
`

func writeConfigDir(t *testing.T, commands string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.VariablesFile), []byte(testVariables), 0o644))
	if commands != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.CommandsFile), []byte(commands), 0o644))
	}
	return dir
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ui.SetOutput(&buf, &buf)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return &buf
}

func TestRegistryAliases(t *testing.T) {
	dir := writeConfigDir(t, "gcloud:\n  alias: [cloud, gc]\n")
	store, err := config.Load(dir)
	require.NoError(t, err)

	root := newRootCmd(store)

	testCases := []struct {
		args []string
		want string
	}{
		{args: []string{"gl", "ren"}, want: "renovate"},
		{args: []string{"gc", "policy_id"}, want: "policy-tags"},
		{args: []string{"cloud", "projects"}, want: "projects"},
		{args: []string{"as", "us"}, want: "update-status"},
		{args: []string{"sl", "g"}, want: "go"},
		{args: []string{"z", "m"}, want: "meeting"},
		{args: []string{"git", "rh"}, want: "reset-history"},
		{args: []string{"ai", "pp"}, want: "print-project"},
		{args: []string{"ai", "pc"}, want: "process-and-claude"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			found, _, err := root.Find(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, found.Name())
		})
	}

	gcloud := findCommand(root, "gcloud")
	require.NotNil(t, gcloud)
	assert.Equal(t, []string{"gc", "cloud"}, gcloud.Aliases)
}

func TestDefaultCommand(t *testing.T) {
	testCases := []struct {
		desc        string
		commands    string
		args        []string
		expectError string
		verify      func(t *testing.T, out string)
	}{
		{
			desc:     "default params are applied as flags",
			commands: "gcloud:\n  default_command: projects\n  default_params:\n    nro: [ab, cd]\n",
			args:     []string{"gcloud"},
			verify: func(t *testing.T, out string) {
				assert.Contains(t, out, "acme-ab-raw")
				assert.Contains(t, out, "acme-cd-platform-dev")
				assert.NotContains(t, out, "acme-zz-raw")
			},
		},
		{
			desc:     "default command without params uses config defaults",
			commands: "gcloud:\n  default_command: projects\n",
			args:     []string{"gc"},
			verify: func(t *testing.T, out string) {
				assert.Contains(t, out, "acme-zz-raw")
			},
		},
		{
			desc:     "missing required argument warns and skips",
			commands: "slack:\n  default_command: msg\n",
			args:     []string{"slack"},
			verify: func(t *testing.T, out string) {
				assert.Contains(t, out, "Required parameter for slack.msg has no default value")
			},
		},
		{
			desc:        "unknown parameter is a configuration error",
			commands:    "gcloud:\n  default_command: projects\n  default_params:\n    colour: red\n",
			args:        []string{"gcloud"},
			expectError: `projects has no parameter "colour"`,
		},
		{
			desc:        "unknown default command",
			commands:    "gcloud:\n  default_command: nope\n",
			args:        []string{"gcloud"},
			expectError: `gcloud has no command "nope"`,
		},
		{
			desc:        "unknown subcommand",
			args:        []string{"gitlab", "nope"},
			expectError: `unknown command "nope" for "hv gitlab"`,
		},
		{
			desc: "group without default prints help",
			args: []string{"asana"},
			verify: func(t *testing.T, out string) {
				assert.Contains(t, out, "my-tasks")
				assert.Contains(t, out, "update-status")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			dir := writeConfigDir(t, tc.commands)
			out := captureOutput(t)
			store, err := config.Load(dir)
			require.NoError(t, err)

			root := newRootCmd(store)
			root.SetOut(out)
			root.SetErr(out)
			root.SetArgs(tc.args)

			err = root.ExecuteContext(t.Context())
			if tc.expectError != "" {
				assert.ErrorContains(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			tc.verify(t, out.String())
		})
	}
}

func TestRunConfigDirFlag(t *testing.T) {
	dir := writeConfigDir(t, "")
	out := captureOutput(t)

	err := run(t.Context(), []string{"--config-dir", dir, "gcloud", "projects", "-n", "ab"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "acme-ab-raw")
}

func TestRunMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.VariablesFile), []byte("gitlab: [unclosed"), 0o644))

	err := run(t.Context(), []string{"--config-dir=" + dir, "git"})
	assert.ErrorContains(t, err, "failed to parse")
}

func TestConfigDirArg(t *testing.T) {
	assert.Equal(t, "/a", configDirArg([]string{"--config-dir", "/a", "gitlab"}))
	assert.Equal(t, "/b", configDirArg([]string{"gitlab", "--config-dir=/b"}))
	assert.Equal(t, "", configDirArg([]string{"--", "--config-dir", "/c"}))
	assert.Equal(t, "", configDirArg([]string{"gitlab"}))
}
