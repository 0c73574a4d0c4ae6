package git

import (
	"fmt"
	"slices"
	"strings"
)

// authorEnv returns the GIT_AUTHOR_* variables that reproduce a commit's authorship
func (c *Client) authorEnv(hash string) ([]string, error) {
	out, err := c.run(nil, "log", "-1", "--format=%an%x00%ae%x00%aI", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read author of %s: %w", hash, err)
	}
	parts := strings.Split(out, "\x00")
	if len(parts) != 3 {
		return nil, fmt.Errorf("unexpected author format for %s", hash)
	}
	return []string{
		"GIT_AUTHOR_NAME=" + parts[0],
		"GIT_AUTHOR_EMAIL=" + parts[1],
		"GIT_AUTHOR_DATE=" + parts[2],
	}, nil
}

// mergedParents returns every parent of hash after the first
func (c *Client) mergedParents(hash string) ([]string, error) {
	out, err := c.run(nil, "rev-list", "--parents", "-n", "1", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read parents of %s: %w", hash, err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return nil, nil
	}
	return fields[2:], nil
}

func (c *Client) fullMessage(hash string) (string, error) {
	out, err := c.run(nil, "log", "-1", "--format=%B", hash)
	if err != nil {
		return "", fmt.Errorf("failed to read message of %s: %w", hash, err)
	}
	return out, nil
}

// Reword rewrites the messages of the first-parent commits in base..HEAD
// (the ones BranchCommits lists). messages maps a commit hash to its new
// message; a hash outside that history is an error and nothing is rewritten.
// Trees, authorship and merge parents are preserved; the branch is moved to
// the rewritten tip with a soft reset. Returns the new HEAD.
func (c *Client) Reword(base string, messages map[string]string) (string, error) {
	hashes, err := c.run(nil, "rev-list", "--reverse", "--first-parent", base+"..HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to list commits against %s: %w", base, err)
	}

	var chain []string
	found := 0
	for h := range strings.SplitSeq(hashes, "\n") {
		if h == "" {
			continue
		}
		if _, ok := messages[h]; ok {
			found++
		}
		if found > 0 {
			chain = append(chain, h)
		}
	}
	if found != len(messages) {
		for h := range messages {
			if !slices.Contains(chain, h) {
				return "", fmt.Errorf("commit %s is not on the first-parent history of %s..HEAD", h, base)
			}
		}
	}
	if len(chain) == 0 {
		return c.GetCommitHash("HEAD")
	}

	parent, err := c.GetCommitHash(chain[0] + "^")
	if err != nil {
		return "", err
	}

	for _, h := range chain {
		tree, err := c.GetCommitTree(h)
		if err != nil {
			return "", err
		}
		msg, ok := messages[h]
		if !ok {
			if msg, err = c.fullMessage(h); err != nil {
				return "", err
			}
		}
		env, err := c.authorEnv(h)
		if err != nil {
			return "", err
		}
		merged, err := c.mergedParents(h)
		if err != nil {
			return "", err
		}
		if parent, err = c.CommitTree(tree, msg, env, append([]string{parent}, merged...)...); err != nil {
			return "", err
		}
	}

	if err := c.ResetSoft(parent); err != nil {
		return "", err
	}
	return parent, nil
}

// ResetHistory replaces the whole history with a single root commit holding
// the current HEAD tree. Returns the new commit.
func (c *Client) ResetHistory(message string) (string, error) {
	tree, err := c.GetCommitTree("HEAD")
	if err != nil {
		return "", err
	}
	hash, err := c.CommitTree(tree, message, nil)
	if err != nil {
		return "", err
	}
	if err := c.ResetMixed(hash); err != nil {
		return "", err
	}
	return hash, nil
}

// Squash collapses everything since the merge base with base into one commit
func (c *Client) Squash(base, message string) (string, error) {
	mergeBase, err := c.MergeBase(base)
	if err != nil {
		return "", err
	}
	if err := c.ResetSoft(mergeBase); err != nil {
		return "", err
	}
	return c.Commit(message)
}
