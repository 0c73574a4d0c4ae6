// Package common builds the clients shared by the command groups from the
// loaded configuration.
package common

import (
	"fmt"

	"github.com/hvanthou/hv/internal/asana"
	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/gcloud"
	"github.com/hvanthou/hv/internal/git"
	"github.com/hvanthou/hv/internal/gitlab"
	"github.com/hvanthou/hv/internal/projects"
	"github.com/hvanthou/hv/internal/ui"
)

// InitGitLab decodes the gitlab section and builds a client from it.
// A missing URL or token is a configuration error naming where to set it.
func InitGitLab(store *config.Store) (*gitlab.Client, config.GitLabSettings, error) {
	settings, err := store.GitLab()
	if err != nil {
		return nil, config.GitLabSettings{}, err
	}
	token, err := store.Credentials().Require("gitlab", "token")
	if err != nil {
		return nil, config.GitLabSettings{}, err
	}
	client, err := gitlab.NewClient(settings.URL, token, settings.RequestTimeout.AsDuration())
	if err != nil {
		return nil, config.GitLabSettings{}, err
	}
	return client, settings, nil
}

// GitLabProjects returns the resolver for GitLab project paths
func GitLabProjects(settings config.GitLabSettings) projects.Resolver {
	return projects.Resolver{
		Template: settings.ProjectTemplate,
		BasePath: settings.BasePath,
	}
}

// InitAsana decodes the asana section and builds a client from it
func InitAsana(store *config.Store) (*asana.Client, config.AsanaSettings, error) {
	settings, err := store.Asana()
	if err != nil {
		return nil, config.AsanaSettings{}, err
	}
	if settings.DefaultProjectGID == "" {
		return nil, config.AsanaSettings{}, config.Errorf("asana.default_project_gid", "no default project configured")
	}
	token, err := store.Credentials().Require("asana", "token")
	if err != nil {
		return nil, config.AsanaSettings{}, err
	}
	client, err := asana.NewClient(settings.APIBaseURL, token, settings.RequestTimeout.AsDuration())
	if err != nil {
		return nil, config.AsanaSettings{}, err
	}
	return client, settings, nil
}

// InitGCloud decodes the gcloud section and builds a gcloud runner
// authenticated with the configured service account file.
func InitGCloud(store *config.Store) (*gcloud.Client, config.GCloudSettings, error) {
	settings, err := store.GCloud()
	if err != nil {
		return nil, config.GCloudSettings{}, err
	}
	file, err := store.Credentials().Require("gcloud", "credentials_file")
	if err != nil {
		return nil, config.GCloudSettings{}, err
	}
	client, err := gcloud.NewClient(file, gcloud.ExecRunner)
	if err != nil {
		return nil, config.GCloudSettings{}, err
	}
	return client, settings, nil
}

// GCloudProjects returns the resolver for GCloud project ids
func GCloudProjects(settings config.GCloudSettings) projects.Resolver {
	return projects.Resolver{
		Template: settings.ProjectTemplate,
		Vars:     map[string]string{"prefix": settings.ProjectPrefix},
	}
}

// InitGit opens the repository containing the working directory
func InitGit() (*git.Client, error) {
	gitClient, err := git.NewClient()
	if err != nil {
		ui.Error("Not in a git repository")
		return nil, fmt.Errorf("git client initialization failed: %w", err)
	}
	return gitClient, nil
}

// Default returns values when set, else fallback
func Default(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	return fallback
}
