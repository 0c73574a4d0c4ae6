package git

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/testutil"
	"github.com/hvanthou/hv/internal/ui"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ui.SetOutput(&buf, &buf)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return &buf
}

// answers returns a Confirm func that replies in order, then false
func answers(replies ...bool) func(string, bool) bool {
	return func(string, bool) bool {
		if len(replies) == 0 {
			return false
		}
		r := replies[0]
		replies = replies[1:]
		return r
	}
}

func subjects(t *testing.T, dir, rng string) []string {
	t.Helper()
	out := testutil.RunGit(t, dir, "log", "--reverse", "--format=%s", rng)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newFeatureBranch(t *testing.T) *git.Client {
	t.Helper()
	gitClient := testutil.NewTestGitClient(t)
	testutil.RunGit(t, gitClient.GitRoot(), "checkout", "-b", "feature")
	return gitClient
}

func TestCheckCommits(t *testing.T) {
	testCases := []struct {
		desc    string
		setup   func(t *testing.T, gitClient *git.Client)
		confirm func(string, bool) bool
		verify  func(t *testing.T, gitClient *git.Client, out string)
	}{
		{
			desc: "all conventional",
			setup: func(t *testing.T, gitClient *git.Client) {
				testutil.CreateCommit(t, gitClient, "feat: add model")
			},
			confirm: answers(),
			verify: func(t *testing.T, gitClient *git.Client, out string) {
				assert.Contains(t, out, "All commits follow conventional format")
			},
		},
		{
			desc: "rewords accepted commits only",
			setup: func(t *testing.T, gitClient *git.Client) {
				testutil.CreateCommit(t, gitClient, "add model")
				testutil.CreateCommit(t, gitClient, "feat: add test")
				testutil.CreateCommitAs(t, gitClient, "update docs", "Ana", "ana@example.com")
			},
			confirm: answers(true, false, true),
			verify: func(t *testing.T, gitClient *git.Client, out string) {
				dir := gitClient.GitRoot()
				assert.Equal(t, []string{"add model", "feat: add test", "fix: update docs"}, subjects(t, dir, "main..HEAD"))
				assert.Equal(t, "Ana", testutil.RunGit(t, dir, "log", "-1", "--format=%an"))
				assert.Contains(t, out, "Successfully amended 1 commits")
			},
		},
		{
			desc: "declining leaves history alone",
			setup: func(t *testing.T, gitClient *git.Client) {
				testutil.CreateCommit(t, gitClient, "wip")
			},
			confirm: answers(false),
			verify: func(t *testing.T, gitClient *git.Client, out string) {
				assert.Equal(t, []string{"wip"}, subjects(t, gitClient.GitRoot(), "main..HEAD"))
				assert.Contains(t, out, "Found commits not following conventional format")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			gitClient := newFeatureBranch(t)
			tc.setup(t, gitClient)
			out := captureOutput(t)

			cmd := CheckCommitsCommand{Base: "main", Git: gitClient, Confirm: tc.confirm}
			require.NoError(t, cmd.Run(t.Context()))
			tc.verify(t, gitClient, out.String())
		})
	}
}

func TestResetHistory(t *testing.T) {
	testCases := []struct {
		desc    string
		confirm func(string, bool) bool
		want    []string
	}{
		{desc: "two confirmations reset", confirm: answers(true, true), want: []string{git.InitialCommitMessage}},
		{desc: "second refusal cancels", confirm: answers(true, false), want: []string{"Initial commit", "feat: one"}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			gitClient := testutil.NewTestGitClient(t)
			testutil.CreateCommit(t, gitClient, "feat: one")
			captureOutput(t)

			cmd := ResetHistoryCommand{Git: gitClient, Confirm: tc.confirm}
			require.NoError(t, cmd.Run(t.Context()))

			assert.Equal(t, tc.want, subjects(t, gitClient.GitRoot(), "HEAD"))
			hasChanges, err := gitClient.HasUncommittedChanges()
			require.NoError(t, err)
			assert.False(t, hasChanges)
		})
	}
}

func TestSquash(t *testing.T) {
	testCases := []struct {
		desc        string
		cmd         SquashCommand
		onBase      bool
		confirm     func(string, bool) bool
		expectError string
		want        []string
	}{
		{
			desc:    "prompted message defaults to last subject",
			confirm: answers(true),
			want:    []string{"feat: second"},
		},
		{
			desc:    "non conventional message gets fix prefix",
			cmd:     SquashCommand{Message: "squashed"},
			confirm: answers(true, true),
			want:    []string{"fix: squashed"},
		},
		{
			desc:    "cancelled",
			cmd:     SquashCommand{Message: "feat: all"},
			confirm: answers(false),
			want:    []string{"first", "feat: second"},
		},
		{
			desc:        "refuses on base branch",
			onBase:      true,
			confirm:     answers(true),
			expectError: "cannot squash when on main branch",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			gitClient := testutil.NewTestGitClient(t)
			if !tc.onBase {
				testutil.RunGit(t, gitClient.GitRoot(), "checkout", "-b", "feature")
			}
			testutil.CreateCommit(t, gitClient, "first")
			testutil.CreateCommit(t, gitClient, "feat: second")
			captureOutput(t)

			cmd := tc.cmd
			cmd.Base = "main"
			cmd.Git = gitClient
			cmd.Confirm = tc.confirm
			cmd.Prompt = func(_, def string) string { return def }

			err := cmd.Run(t.Context())
			if tc.expectError != "" {
				assert.ErrorContains(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, subjects(t, gitClient.GitRoot(), "main..HEAD"))
		})
	}
}

func TestSync(t *testing.T) {
	origin := testutil.NewTestGitClient(t)
	cloneDir := filepath.Join(t.TempDir(), "clone")
	testutil.RunGit(t, origin.GitRoot(), "clone", origin.GitRoot(), cloneDir)
	testutil.RunGit(t, cloneDir, "checkout", "-b", "feature")

	clone, err := git.NewClientAt(cloneDir)
	require.NoError(t, err)

	upstream := testutil.CreateCommit(t, origin, "feat: upstream")
	out := captureOutput(t)

	cmd := SyncCommand{Base: "main", Git: clone}
	require.NoError(t, cmd.Run(t.Context()))

	branch, err := clone.GetCurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
	head, err := clone.GetCommitHash("HEAD")
	require.NoError(t, err)
	assert.Equal(t, upstream, head)
	assert.Contains(t, out.String(), "Successfully synced with main branch")
}
