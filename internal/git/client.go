package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Error is a failed git invocation with its stderr
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Client provides git operations for a repository
type Client struct {
	gitRoot string
}

// NewClient creates a new git client for the current directory
func NewClient() (*Client, error) {
	return NewClientAt("")
}

// NewClientAt creates a git client for the repository containing dir
func NewClientAt(dir string) (*Client, error) {
	c := &Client{gitRoot: dir}
	root, err := c.run(nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not in a git repository: %w", err)
	}
	c.gitRoot = root
	return c, nil
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// run executes git in the repository root and returns trimmed stdout
func (c *Client) run(env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.gitRoot
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// GetCurrentBranch returns the name of the current git branch
func (c *Client) GetCurrentBranch() (string, error) {
	branch, err := c.run(nil, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

// CheckoutBranch checks out the specified branch
func (c *Client) CheckoutBranch(name string) error {
	if _, err := c.run(nil, "checkout", name); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// PullRebase pulls the current branch with --rebase
func (c *Client) PullRebase() error {
	if _, err := c.run(nil, "pull", "--rebase"); err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}

// GetCommitHash returns the commit hash for a given ref
func (c *Client) GetCommitHash(ref string) (string, error) {
	hash, err := c.run(nil, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash for %s: %w", ref, err)
	}
	return hash, nil
}

// GetCommitTree returns the tree hash for a commit
func (c *Client) GetCommitTree(commitHash string) (string, error) {
	tree, err := c.run(nil, "rev-parse", commitHash+"^{tree}")
	if err != nil {
		return "", fmt.Errorf("failed to get tree for %s: %w", commitHash, err)
	}
	return tree, nil
}

// MergeBase returns the best common ancestor of base and HEAD
func (c *Client) MergeBase(base string) (string, error) {
	hash, err := c.run(nil, "merge-base", base, "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to find merge base with %s: %w", base, err)
	}
	return hash, nil
}

// ResetSoft moves HEAD to ref keeping the index and working tree
func (c *Client) ResetSoft(ref string) error {
	if _, err := c.run(nil, "reset", "--soft", ref); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// ResetMixed moves HEAD to ref and resets the index, keeping the working tree
func (c *Client) ResetMixed(ref string) error {
	if _, err := c.run(nil, "reset", ref); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// Commit records the staged changes with message
func (c *Client) Commit(message string) (string, error) {
	if _, err := c.run(nil, "commit", "-m", message); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return c.GetCommitHash("HEAD")
}

// CommitTree creates a commit object from a tree. No parents creates a root
// commit. env may carry GIT_AUTHOR_* overrides.
func (c *Client) CommitTree(treeHash, message string, env []string, parents ...string) (string, error) {
	args := []string{"commit-tree", treeHash}
	for _, p := range parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-m", message)

	hash, err := c.run(env, args...)
	if err != nil {
		return "", fmt.Errorf("failed to commit tree: %w", err)
	}
	return hash, nil
}

// HasUncommittedChanges checks if there are any uncommitted changes in the working directory
func (c *Client) HasUncommittedChanges() (bool, error) {
	out, err := c.run(nil, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return out != "", nil
}

// IsGitError reports whether err came from a failed git invocation
func IsGitError(err error) bool {
	var gitErr *Error
	return errors.As(err, &gitErr)
}
