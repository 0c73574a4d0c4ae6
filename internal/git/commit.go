package git

import (
	"fmt"
	"regexp"
	"strings"
)

// ConventionalPattern matches subjects like "feat: x", "fix(api): y" or "chore(all): z"
var ConventionalPattern = regexp.MustCompile(`^(feat|fix|chore)(\(.*?\))?:\s`)

// FixPrefix is prepended to subjects that are not conventional
const FixPrefix = "fix: "

// InitialCommitMessage is the message of the root commit created by ResetHistory
const InitialCommitMessage = "chore(all): initial commit"

// Commit represents a git commit
type Commit struct {
	Hash    string
	Subject string
}

// ShortHash returns the first 8 characters of the hash
func (c Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// IsConventional reports whether message follows the conventional commit format
func IsConventional(message string) bool {
	return ConventionalPattern.MatchString(message)
}

// FixMessage prefixes a non-conventional message with "fix: "
func FixMessage(message string) string {
	message = strings.TrimSpace(message)
	if IsConventional(message) {
		return message
	}
	return FixPrefix + message
}

// BranchCommits lists the first-parent commits in base..HEAD, oldest first.
// Commits reachable only through a merged side branch are not listed.
func (c *Client) BranchCommits(base string) ([]Commit, error) {
	out, err := c.run(nil, "log", "--reverse", "--first-parent", base+"..HEAD", "--format=%H %s")
	if err != nil {
		return nil, fmt.Errorf("failed to list commits against %s: %w", base, err)
	}

	var commits []Commit
	for line := range strings.SplitSeq(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		hash, subject, _ := strings.Cut(line, " ")
		commits = append(commits, Commit{Hash: hash, Subject: subject})
	}
	return commits, nil
}

// InvalidCommits returns the commits whose subject is not conventional
func InvalidCommits(commits []Commit) []Commit {
	var out []Commit
	for _, c := range commits {
		if !IsConventional(c.Subject) {
			out = append(out, c)
		}
	}
	return out
}
