package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

type fakeDesktop struct {
	copied  []string
	opened  []string
	runs    [][]string
	copyErr error
}

func (f *fakeDesktop) desktop(goos string) *desktop.Desktop {
	return &desktop.Desktop{
		GOOS: goos,
		Run: func(_ context.Context, name string, args ...string) error {
			f.runs = append(f.runs, append([]string{name}, args...))
			return nil
		},
		Copy: func(text string) error {
			if f.copyErr != nil {
				return f.copyErr
			}
			f.copied = append(f.copied, text)
			return nil
		},
		OpenURL: func(u string) error {
			f.opened = append(f.opened, u)
			return nil
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// setup writes variables.yaml pointing the output file into a temp dir
func setup(t *testing.T, extra string) (*config.Store, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	output := filepath.Join(dir, "out", "bundle.txt")
	variables := fmt.Sprintf("ai:\n  output_file: %s\n  default_prompt: Review this\n  browser: Firefox\n  chat_url: https://chat.example.com/new\n%s", output, extra)
	writeFile(t, dir, config.VariablesFile, variables)
	store, err := config.Load(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	ui.SetOutput(&buf, &buf)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return store, output, &buf
}

func newProject(t *testing.T) string {
	t.Helper()
	project := t.TempDir()
	writeFile(t, project, "main.py", "print('hi')\n")
	writeFile(t, project, "README.md", "# Project\n")
	writeFile(t, project, "secrets/token.txt", "nope\n")
	writeFile(t, project, "logo.png", "binary")
	return project
}

func TestPrintProject(t *testing.T) {
	project := newProject(t)

	testCases := []struct {
		desc   string
		cmd    PrintProjectCommand
		verify func(t *testing.T, output, out string)
	}{
		{
			desc: "writes the bundle to the configured file",
			cmd:  PrintProjectCommand{Ignore: []string{"secrets"}},
			verify: func(t *testing.T, output, out string) {
				data, err := os.ReadFile(output)
				require.NoError(t, err)
				assert.Equal(t, "*# README.md*\n# Project\n\n\n*# main.py*\nprint('hi')\n\n", string(data))
				assert.Contains(t, out, "Project content written to: "+output)
			},
		},
		{
			desc: "prints to the terminal",
			cmd:  PrintProjectCommand{OutputToCLI: true},
			verify: func(t *testing.T, output, out string) {
				assert.Contains(t, out, "*# secrets/token.txt*")
				assert.NotContains(t, out, "logo.png")
				assert.NoFileExists(t, output)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			store, output, out := setup(t, "")
			cmd := tc.cmd
			cmd.Folders = []string{project}
			cmd.Config = store

			require.NoError(t, cmd.Run(t.Context()))
			tc.verify(t, output, out.String())
		})
	}
}

func TestPrintProjectSensitiveFolder(t *testing.T) {
	project := newProject(t)
	store, output, out := setup(t, fmt.Sprintf("  warning_paths: [%s]\n", project))

	cmd := PrintProjectCommand{
		Folders: []string{project},
		Config:  store,
		Confirm: func(string, bool) bool { return false },
	}
	err := cmd.Run(t.Context())

	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, out.String(), "Processing sensitive path")
	assert.NoFileExists(t, output)
}

func TestClaude(t *testing.T) {
	testCases := []struct {
		desc        string
		cmd         ClaudeCommand
		goos        string
		copyErr     error
		expectError string
		verify      func(t *testing.T, f *fakeDesktop, input, out string)
	}{
		{
			desc: "both on macOS uses the configured browser",
			goos: "darwin",
			verify: func(t *testing.T, f *fakeDesktop, input, out string) {
				require.Len(t, f.copied, 1)
				assert.Equal(t, "<document>\n<source>"+input+"</source>\n<document_content>\nbody\n</document_content>\n</document>\n\nReview this\n\n<userStyle>Normal</userStyle>", f.copied[0])
				assert.Equal(t, [][]string{{"open", "-a", "Firefox", "https://chat.example.com/new"}}, f.runs)
				assert.Empty(t, f.opened)
				assert.Contains(t, out, "1. Content copied to clipboard (both)")
			},
		},
		{
			desc: "prompt only in the default browser elsewhere",
			cmd:  ClaudeCommand{CopyMode: "prompt", Prompt: "Explain"},
			goos: "linux",
			verify: func(t *testing.T, f *fakeDesktop, input, out string) {
				assert.Equal(t, []string{"Explain\n\n<userStyle>Normal</userStyle>"}, f.copied)
				assert.Equal(t, []string{"https://chat.example.com/new"}, f.opened)
			},
		},
		{
			desc:    "clipboard failure prints the content",
			goos:    "linux",
			copyErr: errors.New("no clipboard"),
			verify: func(t *testing.T, f *fakeDesktop, input, out string) {
				assert.Contains(t, out, "copy manually")
				assert.Contains(t, out, "<document_content>\nbody\n</document_content>")
			},
		},
		{
			desc:        "invalid copy mode",
			cmd:         ClaudeCommand{CopyMode: "all"},
			goos:        "linux",
			expectError: `invalid copy mode "all"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			store, output, out := setup(t, "")
			writeFile(t, filepath.Dir(output), filepath.Base(output), "body")
			f := &fakeDesktop{copyErr: tc.copyErr}

			cmd := tc.cmd
			cmd.Config = store
			cmd.Desktop = f.desktop(tc.goos)

			err := cmd.Run(t.Context())
			if tc.expectError != "" {
				assert.ErrorContains(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			tc.verify(t, f, output, out.String())
		})
	}
}

func TestProcessAndClaude(t *testing.T) {
	project := newProject(t)
	store, output, _ := setup(t, "")
	f := &fakeDesktop{}

	cmd := ProcessAndClaudeCommand{Folders: []string{project}, Config: store, Desktop: f.desktop("linux")}
	require.NoError(t, cmd.Run(t.Context()))

	require.FileExists(t, output)
	require.Len(t, f.copied, 1)
	assert.Contains(t, f.copied[0], "*# main.py*")
	assert.Contains(t, f.copied[0], "Review this")
}

func TestDBT(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "models/b.sql", "select 2")
	writeFile(t, project, "models/a.sql", "select 1")
	writeFile(t, project, "target/models/c.sql", "compiled")
	writeFile(t, project, "seeds/d.csv", "x")

	t.Run("terminal output does not open a chat", func(t *testing.T) {
		store, _, out := setup(t, "")
		f := &fakeDesktop{}

		cmd := DBTCommand{Folders: []string{project}, OutputToCLI: true, Config: store, Desktop: f.desktop("linux")}
		require.NoError(t, cmd.Run(t.Context()))

		assert.Contains(t, out.String(), "*# models/a.sql*\nselect 1\n\n*# models/b.sql*\nselect 2")
		assert.NotContains(t, out.String(), "compiled")
		assert.Empty(t, f.opened)
	})

	t.Run("file output opens a chat", func(t *testing.T) {
		store, output, out := setup(t, "")
		f := &fakeDesktop{}

		cmd := DBTCommand{Folders: []string{project}, Config: store, Desktop: f.desktop("linux")}
		require.NoError(t, cmd.Run(t.Context()))

		assert.FileExists(t, output)
		assert.Contains(t, out.String(), "DBT content written to")
		assert.Len(t, f.opened, 1)
	})
}
