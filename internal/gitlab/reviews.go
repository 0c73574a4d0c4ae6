package gitlab

import "strings"

// ReviewFilter selects merge requests worth a human review
type ReviewFilter struct {
	// BotPrefix excludes bot-authored branches
	BotPrefix string
	// Path must appear in the fully qualified reference. Empty matches everything.
	Path string
}

// Apply keeps merge requests that have a target project, are not bot branches
// and live under the configured path.
func (f ReviewFilter) Apply(mrs []MergeRequest) []MergeRequest {
	var out []MergeRequest
	for _, mr := range mrs {
		if mr.TargetProjectID == 0 {
			continue
		}
		if f.BotPrefix != "" && strings.HasPrefix(mr.SourceBranch, f.BotPrefix) {
			continue
		}
		if !strings.Contains(mr.References.Full, f.Path) {
			continue
		}
		out = append(out, mr)
	}
	return out
}
