package gcloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/hvanthou/hv/internal/fanout"
	"github.com/hvanthou/hv/internal/projects"
)

// PolicyTags maps nro -> taxonomy -> tag display name -> full policy tag path
type PolicyTags map[string]map[string]map[string]string

// Reporter receives per-NRO progress
type Reporter interface {
	Successf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Collector fetches policy tags for many NROs concurrently
type Collector struct {
	Lister         TagLister
	Projects       projects.Resolver
	ProjectType    string
	Location       string
	Reporter       Reporter
	MaxConcurrency int
}

type nroResult struct {
	nro  string
	tags map[string]map[string]string
	err  error
}

// Collect fetches every NRO. A failing NRO is reported and left out of the result.
func (c *Collector) Collect(ctx context.Context, nros []string) PolicyTags {
	results := fanout.Map(ctx, nros, c.MaxConcurrency, func(ctx context.Context, nro string) nroResult {
		tags, err := c.collectNRO(ctx, nro)
		return nroResult{nro: nro, tags: tags, err: err}
	})

	out := PolicyTags{}
	for _, r := range results {
		if r.err != nil {
			if c.Reporter != nil {
				c.Reporter.Errorf("Error fetching policy tags for %s: %v", r.nro, r.err)
			}
			continue
		}
		if c.Reporter != nil {
			c.Reporter.Successf("Fetched policy tags for %s", r.nro)
		}
		out[r.nro] = r.tags
	}
	return out
}

func (c *Collector) collectNRO(ctx context.Context, nro string) (map[string]map[string]string, error) {
	project, err := c.Projects.Format(nro, c.ProjectType)
	if err != nil {
		return nil, err
	}

	taxonomies, err := c.Lister.ListTaxonomies(ctx, project, c.Location)
	if err != nil {
		return nil, err
	}

	cleanProject := strings.ReplaceAll(project, "-dev", "")
	out := map[string]map[string]string{}
	for _, taxonomy := range taxonomies {
		name := strings.ReplaceAll(strings.ToLower(taxonomy.DisplayName), "-"+nro, "")
		if _, ok := out[name]; !ok {
			out[name] = map[string]string{}
		}

		tags, err := c.Lister.ListPolicyTags(ctx, taxonomy.Name, c.Location)
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			out[name][tag.DisplayName] = fmt.Sprintf("projects/%s/locations/%s/taxonomies/%s/policyTags/%s",
				cleanProject, c.Location, taxonomy.ID(), tag.ID())
		}
	}
	return out, nil
}
