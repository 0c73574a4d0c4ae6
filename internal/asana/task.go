package asana

import (
	"golang.org/x/text/cases"
)

const (
	NoSection   = "No section"
	Unassigned  = "Unassigned"
	NoDueDate   = "No due date"
	DoneSection = "Done"
)

// Task is an Asana task with the fields requested by ListTasks
type Task struct {
	GID         string       `json:"gid"`
	Name        string       `json:"name"`
	Notes       string       `json:"notes"`
	Completed   bool         `json:"completed"`
	DueOn       string       `json:"due_on"`
	Assignee    *Ref         `json:"assignee"`
	Memberships []Membership `json:"memberships"`
}

// Ref is a gid/name reference to another Asana object
type Ref struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Membership places a task in a project section
type Membership struct {
	Project Ref  `json:"project"`
	Section *Ref `json:"section"`
}

// Section is a project section
type Section struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// SectionIn returns the task's section name within a project
func (t Task) SectionIn(projectGID string) string {
	for _, m := range t.Memberships {
		if m.Project.GID == projectGID && m.Section != nil && m.Section.Name != "" {
			return m.Section.Name
		}
	}
	return NoSection
}

// AssigneeName returns the assignee's name or Unassigned
func (t Task) AssigneeName() string {
	if t.Assignee == nil || t.Assignee.Name == "" {
		return Unassigned
	}
	return t.Assignee.Name
}

// Due returns the due date or a placeholder
func (t Task) Due() string {
	if t.DueOn == "" {
		return NoDueDate
	}
	return t.DueOn
}

// Filter selects which tasks are listed
type Filter struct {
	ProjectGID  string
	AssigneeGID string
	IncludeDone bool
	DoneSection string
}

// Apply drops completed tasks, tasks of other assignees and, unless
// IncludeDone, tasks sitting in the done section.
func (f Filter) Apply(tasks []Task) []Task {
	done := f.DoneSection
	if done == "" {
		done = DoneSection
	}

	var out []Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if f.AssigneeGID != "" && (t.Assignee == nil || t.Assignee.GID != f.AssigneeGID) {
			continue
		}
		if !f.IncludeDone && t.SectionIn(f.ProjectGID) == done {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FindSection matches a section by name, ignoring case
func FindSection(sections []Section, name string) (Section, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	for _, s := range sections {
		if fold.String(s.Name) == want {
			return s, true
		}
	}
	return Section{}, false
}

// Comment builds the story text posted for a GitLab MR link
func Comment(mrLink, extra string) string {
	text := "GitLab MR: " + mrLink
	if extra != "" {
		text += "\n" + extra
	}
	return text
}
