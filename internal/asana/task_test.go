package asana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func task(gid, assignee, section string, completed bool) Task {
	t := Task{GID: gid, Name: "task " + gid, Completed: completed}
	if assignee != "" {
		t.Assignee = &Ref{GID: assignee, Name: assignee}
	}
	if section != "" {
		t.Memberships = []Membership{{Project: Ref{GID: "p1"}, Section: &Ref{Name: section}}}
	}
	return t
}

func gids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.GID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tasks := []Task{
		task("1", "me", "To Do", false),
		task("2", "me", "Done", false),
		task("3", "other", "To Do", false),
		task("4", "me", "To Do", true),
		task("5", "", "", false),
	}

	tests := []struct {
		desc   string
		filter Filter
		expect []string
	}{
		{desc: "AllTasks", filter: Filter{ProjectGID: "p1", IncludeDone: true}, expect: []string{"1", "2", "3", "5"}},
		{desc: "MineWithoutDone", filter: Filter{ProjectGID: "p1", AssigneeGID: "me"}, expect: []string{"1"}},
		{desc: "MineWithDone", filter: Filter{ProjectGID: "p1", AssigneeGID: "me", IncludeDone: true}, expect: []string{"1", "2"}},
		{desc: "CustomDoneSection", filter: Filter{ProjectGID: "p1", AssigneeGID: "me", DoneSection: "To Do"}, expect: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expect, gids(tt.filter.Apply(tasks)))
		})
	}
}

func TestTaskAccessors(t *testing.T) {
	empty := Task{}
	assert.Equal(t, NoSection, empty.SectionIn("p1"))
	assert.Equal(t, Unassigned, empty.AssigneeName())
	assert.Equal(t, NoDueDate, empty.Due())

	other := task("1", "me", "Doing", false)
	assert.Equal(t, NoSection, other.SectionIn("p2"))
}

func TestComment(t *testing.T) {
	assert.Equal(t, "GitLab MR: https://x", Comment("https://x", ""))
	assert.Equal(t, "GitLab MR: https://x\nready for review", Comment("https://x", "ready for review"))
}
