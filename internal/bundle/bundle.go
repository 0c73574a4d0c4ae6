// Package bundle concatenates project files into a single text document for
// pasting into an AI chat.
package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// PriorityFiles are emitted first, in this order, when present at a folder root
var PriorityFiles = []string{"README.md", "pyproject.toml", "go.mod"}

// DefaultTextExtensions is used when no extensions are configured
var DefaultTextExtensions = []string{
	".md", ".txt", ".py", ".go", ".toml", ".yaml", ".yml", ".json",
	".sql", ".sh", ".js", ".ts", ".tsx", ".css", ".html", ".cfg", ".ini",
}

// Matcher decides which relative paths are left out of a bundle.
// Patterns use fnmatch semantics: '*' also matches '/'.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles ignore patterns, expanding a leading ~
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(expandHome(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Ignored reports whether rel, its base name, or any of its leading path
// prefixes matches a pattern.
func (m *Matcher) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	candidates := []string{rel, path.Base(rel)}
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		candidates = append(candidates, strings.Join(parts[:i], "/"))
	}

	for _, g := range m.globs {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}

// Options configures Build
type Options struct {
	Ignore         *Matcher
	TextExtensions []string
}

// Result is a built document plus the per-file problems that were skipped
type Result struct {
	Content string
	Files   []string
	Errors  []error
}

// Build walks every folder and concatenates its text files. Each file is
// emitted as a "*# rel/path*" header, its content and a blank line.
func Build(folders []string, opts Options) Result {
	exts := opts.TextExtensions
	if len(exts) == 0 {
		exts = DefaultTextExtensions
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = &Matcher{}
	}

	var b builder
	for _, folder := range folders {
		root, err := filepath.Abs(folder)
		if err == nil {
			_, err = os.Stat(root)
		}
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("folder not found: %s", folder))
			continue
		}

		emitted := map[string]bool{}
		for _, name := range PriorityFiles {
			p := filepath.Join(root, name)
			if _, err := os.Stat(p); err == nil {
				b.add(root, p)
				emitted[p] = true
			}
		}

		walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				b.errs = append(b.errs, err)
				return nil
			}
			if p == root {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if ignore.Ignored(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if emitted[p] || ignore.Ignored(rel) || !IsText(d.Name(), exts) {
				return nil
			}
			b.add(root, p)
			return nil
		})
		if walkErr != nil {
			b.errs = append(b.errs, walkErr)
		}
	}

	return b.result()
}

// IsText reports whether name has one of the text extensions (case-insensitive)
func IsText(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.Contains(exts, ext)
}

type builder struct {
	parts []string
	files []string
	errs  []error
}

func (b *builder) add(root, p string) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	data, err := os.ReadFile(p)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("error reading %s: %w", rel, err))
		return
	}
	b.parts = append(b.parts, "*# "+rel+"*", string(data), "")
	b.files = append(b.files, rel)
}

func (b *builder) result() Result {
	return Result{
		Content: strings.Join(b.parts, "\n"),
		Files:   b.files,
		Errors:  b.errs,
	}
}

// SensitiveFolders returns the absolute folders that fall under a warning path
func SensitiveFolders(folders, warningPaths []string) []string {
	var out []string
	for _, folder := range folders {
		abs, err := filepath.Abs(folder)
		if err != nil {
			continue
		}
		for _, w := range warningPaths {
			if w = expandHome(w); w != "" && strings.HasPrefix(abs, w) {
				out = append(out, abs)
				break
			}
		}
	}
	return out
}

// WriteFile writes content, creating parent directories
func WriteFile(name, content string) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
