package gcloud

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/ui"
)

// ProjectsCommand prints the GCloud project ids of each NRO
type ProjectsCommand struct {
	// Flags
	NROs []string

	Config *config.Store
}

// Register registers the command with cobra
func (c *ProjectsCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List GCloud projects for the given NROs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVarP(&c.NROs, "nro", "n", nil, "NRO to process (repeatable)")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *ProjectsCommand) Run(ctx context.Context) error {
	settings, err := c.Config.GCloud()
	if err != nil {
		return err
	}
	glSettings, err := c.Config.GitLab()
	if err != nil {
		return err
	}

	resolver := common.GCloudProjects(settings)
	types := append([]string{}, settings.ProjectTypes...)
	for _, t := range glSettings.DefaultTypes {
		types = append(types, "platform-"+t)
	}

	for _, nro := range common.Default(c.NROs, glSettings.DefaultNROs) {
		ids, err := resolver.Resolve([]string{nro}, types)
		if err != nil {
			return err
		}

		ui.Print("")
		ui.Header("Projects for NRO: " + nro)
		ui.Print(strings.Repeat("-", 60))
		for _, id := range ids {
			ui.Print(id)
		}
	}
	return nil
}
