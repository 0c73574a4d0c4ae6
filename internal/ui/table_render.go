package ui

import (
	"github.com/hvanthou/hv/internal/asana"
)

// RenderTasks renders Asana tasks as a table. The Assignee column is shown
// only when showAssignee is set.
func RenderTasks(tasks []asana.Task, projectGID string, showAssignee bool) string {
	if len(tasks) == 0 {
		return WarningStyle.Render("No tasks found")
	}

	headers := []string{"Section", "Name", "Due Date"}
	if showAssignee {
		headers = append(headers, "Assignee")
	}

	t := NewTable(headers...)
	for _, task := range tasks {
		row := []string{task.SectionIn(projectGID), Truncate(task.Name, 60), task.Due()}
		if showAssignee {
			row = append(row, task.AssigneeName())
		}
		t.Row(row...)
	}
	return t.Render()
}
