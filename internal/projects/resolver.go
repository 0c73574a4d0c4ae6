// Package projects derives remote project identifiers from organization
// codes, project-type codes and a naming template.
package projects

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/hvanthou/hv/internal/config"
)

// Resolver formats {nro}/{org} and {type} (plus any Vars) into project paths.
type Resolver struct {
	Template string
	BasePath string
	Vars     map[string]string
}

// Resolve returns one identifier per (org, type) pair, orgs outer and types
// inner. Duplicate inputs are collapsed keeping first-occurrence order.
func (r Resolver) Resolve(orgs, types []string) ([]string, error) {
	orgs = dedupe(orgs)
	types = dedupe(types)

	tpl, err := fasttemplate.NewTemplate(r.Template, "{", "}")
	if err != nil {
		return nil, config.Errorf("project_template", "invalid template %q: %v", r.Template, err)
	}

	base := strings.TrimRight(r.BasePath, "/")
	paths := make([]string, 0, len(orgs)*len(types))
	for _, org := range orgs {
		for _, typ := range types {
			p, err := tpl.ExecuteFuncStringWithErr(r.tagFunc(org, typ))
			if err != nil {
				return nil, config.Errorf("project_template", "template %q: %v", r.Template, err)
			}
			if base != "" {
				p = base + "/" + p
			}
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// Format renders the template for a single (org, type) pair without a base path
func (r Resolver) Format(org, typ string) (string, error) {
	paths, err := Resolver{Template: r.Template, Vars: r.Vars}.Resolve([]string{org}, []string{typ})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

func (r Resolver) tagFunc(org, typ string) fasttemplate.TagFunc {
	return func(w io.Writer, tag string) (int, error) {
		switch tag {
		case "nro", "org":
			return w.Write([]byte(org))
		case "type":
			return w.Write([]byte(typ))
		}
		if v, ok := r.Vars[tag]; ok {
			return w.Write([]byte(v))
		}
		return 0, fmt.Errorf("unknown placeholder {%s}", tag)
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
