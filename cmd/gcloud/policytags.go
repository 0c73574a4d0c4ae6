package gcloud

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/bundle"
	"github.com/hvanthou/hv/internal/common"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/gcloud"
	"github.com/hvanthou/hv/internal/ui"
)

// PolicyTagsCommand lists the policy tags of every NRO with their full resource paths
type PolicyTagsCommand struct {
	// Flags
	NROs     []string
	Format   string
	Location string
	Output   string

	Config *config.Store

	// Clients (can be mocked in tests)
	Lister gcloud.TagLister
}

// Register registers the command with cobra
func (c *PolicyTagsCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "policy-tags",
		Aliases: []string{"policy_id", "policy_tags"},
		Short:   "List policy tags with full paths for the given NROs",
		Long: `Fetch the Data Catalog taxonomies and policy tags of each NRO's
internal project concurrently and print them as json, yaml, raw or dbt.

Example:
  hv gcloud policy-tags                       # Default NROs as JSON
  hv gcloud policy-tags -n ab -f dbt          # One NRO, dbt keys
  hv gcloud policy-tags -f yaml -o tags.yaml  # Save to a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVarP(&c.NROs, "nro", "n", nil, "NRO to process (repeatable)")
	cmd.Flags().StringVarP(&c.Format, "format", "f", gcloud.FormatJSON,
		"Output format: "+strings.Join(gcloud.Formats, ", "))
	cmd.Flags().StringVarP(&c.Location, "location", "l", "", "GCloud location for policy tags")
	cmd.Flags().StringVarP(&c.Output, "output", "o", "", "Save output to a file")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *PolicyTagsCommand) Run(ctx context.Context) error {
	if c.Format == "" {
		c.Format = gcloud.FormatJSON
	}
	if !slices.Contains(gcloud.Formats, c.Format) {
		return fmt.Errorf("invalid format %q: use one of %s", c.Format, strings.Join(gcloud.Formats, ", "))
	}

	settings, err := c.Config.GCloud()
	if err != nil {
		return err
	}
	glSettings, err := c.Config.GitLab()
	if err != nil {
		return err
	}
	if c.Lister == nil {
		if c.Lister, _, err = common.InitGCloud(c.Config); err != nil {
			return err
		}
	}

	location := c.Location
	if location == "" {
		location = settings.DefaultLocation
	}
	if location == "" {
		return config.Errorf("gcloud.default_location", "no location given and none configured")
	}

	nros := common.Default(c.NROs, glSettings.DefaultNROs)
	ui.Infof("Fetching policy tags for %d NROs...", len(nros))

	collector := &gcloud.Collector{
		Lister:         c.Lister,
		Projects:       common.GCloudProjects(settings),
		ProjectType:    settings.PolicyTagProjectType,
		Location:       location,
		Reporter:       ui.Reporter{},
		MaxConcurrency: settings.MaxConcurrency,
	}
	tags := collector.Collect(ctx, nros)

	content, err := gcloud.Format(tags, c.Format)
	if err != nil {
		return err
	}

	ui.Print("")
	ui.Success(gcloud.Title(c.Format))
	ui.Print(content)

	if c.Output != "" {
		if err := bundle.WriteFile(c.Output, content); err != nil {
			ui.Errorf("Error saving to file: %v", err)
			return nil
		}
		ui.Print("")
		ui.Successf("Output saved to: %s", c.Output)
	}
	return nil
}
