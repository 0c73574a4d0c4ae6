package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/git"
)

// NewTestGitClient creates a new git client in a temporary directory with an initial commit on main
func NewTestGitClient(t *testing.T) *git.Client {
	t.Helper()
	tempDir := t.TempDir()

	RunGit(t, tempDir, "init", "--initial-branch=main")
	// Set user name and email for reproducible commits
	RunGit(t, tempDir, "config", "user.email", "test@example.com")
	RunGit(t, tempDir, "config", "user.name", "Test User")
	RunGit(t, tempDir, "config", "commit.gpgsign", "false")

	gitClient, err := git.NewClientAt(tempDir)
	require.NoError(t, err)

	_ = CreateCommit(t, gitClient, "Initial commit")

	return gitClient
}

// CreateCommit writes a file named after the subject and commits it
func CreateCommit(t *testing.T, gitClient *git.Client, subject string) string {
	t.Helper()
	return CreateCommitAs(t, gitClient, subject, "Test User", "test@example.com")
}

// CreateCommitAs creates a commit with a specific author
func CreateCommitAs(t *testing.T, gitClient *git.Client, subject, authorName, authorEmail string) string {
	t.Helper()

	// Use the subject for uniqueness; time.Now() is frozen under synctest
	name := strings.NewReplacer("/", "_", ":", "_", " ", "_", "(", "_", ")", "_").Replace(subject)
	testFile := filepath.Join(gitClient.GitRoot(), fmt.Sprintf("file-%s.txt", name))
	require.NoError(t, os.WriteFile(testFile, []byte(subject+"\n"), 0o644))

	RunGit(t, gitClient.GitRoot(), "add", ".")

	cmd := exec.Command("git", "commit", "-m", subject)
	cmd.Dir = gitClient.GitRoot()
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+authorName,
		"GIT_AUTHOR_EMAIL="+authorEmail,
		"GIT_AUTHOR_DATE=2024-01-01T00:00:00Z",
		"GIT_COMMITTER_DATE=2024-01-01T00:00:00Z",
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git commit failed: %s", string(output))

	return RunGit(t, gitClient.GitRoot(), "rev-parse", "HEAD")
}

// RunGit runs git in dir, failing the test on error, and returns trimmed output
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), string(output))
	return strings.TrimSpace(string(output))
}
