package asana

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/asana"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

const noChange = "n"

// UpdateStatusCommand walks through my tasks, attaching MR links and moving
// tasks between sections
type UpdateStatusCommand struct {
	// Flags
	IncludeDone bool

	Config *config.Store

	// Clients (can be mocked in tests)
	Client *asana.Client
	Prompt func(prompt, def string) string
}

// Register registers the command with cobra
func (c *UpdateStatusCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "update-status",
		Aliases: []string{"update", "us"},
		Short:   "Update task status and add comments interactively",
		Long: `For each of my tasks, optionally post a GitLab MR link as a comment and
move the task to another section using the configured shortcuts.

Answer "n" (or press enter) to skip a step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&c.IncludeDone, "include-done", "d", false, "Include tasks in the Done section")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *UpdateStatusCommand) Run(ctx context.Context) error {
	client, settings, tasks, err := loadTasks(ctx, c.Config, c.Client, true, c.IncludeDone)
	if err != nil {
		return err
	}
	c.Client = client
	if c.Prompt == nil {
		c.Prompt = ui.Prompt
	}

	shortcuts := slices.Sorted(maps.Keys(settings.SectionMapping))
	ui.Print("")
	ui.Print(ui.WarningStyle.Render("Section shortcuts:"))
	for _, key := range shortcuts {
		ui.Printf("%-3s - %s\n", key, settings.SectionMapping[key])
	}
	ui.Printf("%-3s - No change\n", noChange)

	choices := strings.Join(append(shortcuts, noChange), "/")
	var sections []asana.Section

	for _, task := range tasks {
		ui.Print(ui.Rule("─"))
		ui.Header("Task: " + task.Name)
		if notes := strings.TrimSpace(task.Notes); notes != "" {
			ui.Print(ui.Bold("Description:"))
			ui.Print(notes)
		}

		if link := c.Prompt("GitLab MR link", noChange); !strings.EqualFold(link, noChange) {
			extra := c.Prompt("Additional comment", noChange)
			if strings.EqualFold(extra, noChange) {
				extra = ""
			}
			if err := c.Client.AddComment(ctx, task.GID, asana.Comment(link, extra)); err != nil {
				ui.Errorf("Failed to add comment: %v", err)
			} else {
				ui.Success("Comment added")
			}
		}

		status := strings.ToLower(c.Prompt(fmt.Sprintf("Move to section? (%s)", choices), noChange))
		name, ok := settings.SectionMapping[status]
		if status == noChange || !ok {
			continue
		}

		if sections == nil {
			if sections, err = c.Client.ListSections(ctx, settings.DefaultProjectGID); err != nil {
				ui.Errorf("Failed to list sections: %v", err)
				continue
			}
		}
		section, found := asana.FindSection(sections, name)
		if !found {
			ui.Warningf("Section not found: %s", name)
			continue
		}
		if err := c.Client.MoveTask(ctx, section.GID, task.GID); err != nil {
			ui.Errorf("Failed to move task: %v", err)
			continue
		}
		ui.Successf("Moved task to %s", name)
	}
	return nil
}
