package gitlab

import (
	"context"
	"strings"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/fanout"
)

// Fetcher lists bot-authored open merge requests across many projects concurrently
type Fetcher struct {
	Directory      *Directory
	Lister         MergeRequestLister
	Reporter       Reporter
	BranchPrefix   string
	MaxConcurrency int
}

// NewFetcher creates a fetcher using the default renovate branch prefix and no concurrency cap
func NewFetcher(dir *Directory, lister MergeRequestLister, reporter Reporter) *Fetcher {
	return &Fetcher{
		Directory:    dir,
		Lister:       lister,
		Reporter:     reporter,
		BranchPrefix: config.DefaultRenovatePrefix,
	}
}

// Fetch resolves every path and lists its matching merge requests. A path that
// cannot be resolved or listed is reported once and contributes nothing.
// Results are grouped in path order with API order preserved within a project.
func (f *Fetcher) Fetch(ctx context.Context, paths []string) []MergeRequest {
	reporter := f.reporter()

	perProject := fanout.Map(ctx, paths, f.MaxConcurrency, func(ctx context.Context, path string) []MergeRequest {
		id, err := f.Directory.Resolve(ctx, path)
		if err != nil {
			reporter.Warningf("Could not find project: %s", path)
			return nil
		}

		mrs, err := f.Lister.ListOpenMergeRequests(ctx, id)
		if err != nil {
			reporter.Errorf("Failed to get MRs for project: %s", path)
			return nil
		}

		var matched []MergeRequest
		for _, mr := range mrs {
			if !strings.HasPrefix(mr.SourceBranch, f.BranchPrefix) {
				continue
			}
			mr.ProjectPath = path
			matched = append(matched, mr)
		}
		return matched
	})

	var out []MergeRequest
	for _, mrs := range perProject {
		out = append(out, mrs...)
	}
	return out
}

func (f *Fetcher) reporter() Reporter {
	if f.Reporter == nil {
		return discardReporter{}
	}
	return f.Reporter
}
