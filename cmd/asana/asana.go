package asana

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/asana"
	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
)

// Command is the parent command for the Asana subcommands
type Command struct {
	Config *config.Store
}

// Register registers the asana command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "asana",
		Short: "Asana task management operations",
	}

	(&MyTasksCommand{Config: c.Config}).Register(cmd)
	(&AllTasksCommand{Config: c.Config}).Register(cmd)
	(&UpdateStatusCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}

// loadTasks fetches the default project's tasks and filters them
func loadTasks(ctx context.Context, store *config.Store, client *asana.Client, mine, includeDone bool) (*asana.Client, config.AsanaSettings, []asana.Task, error) {
	settings, err := store.Asana()
	if err != nil {
		return nil, config.AsanaSettings{}, nil, err
	}
	if client == nil {
		if client, settings, err = common.InitAsana(store); err != nil {
			return nil, config.AsanaSettings{}, nil, err
		}
	}

	tasks, err := client.ListTasks(ctx, settings.DefaultProjectGID)
	if err != nil {
		return nil, config.AsanaSettings{}, nil, err
	}

	filter := asana.Filter{
		ProjectGID:  settings.DefaultProjectGID,
		IncludeDone: includeDone,
		DoneSection: settings.SectionMapping["d"],
	}
	if mine {
		filter.AssigneeGID = settings.DefaultAssigneeGID
	}
	return client, settings, filter.Apply(tasks), nil
}
