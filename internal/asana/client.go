// Package asana is a minimal client for the Asana REST API.
package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/rest"
)

const taskFields = "name,completed,due_on,assignee.name,assignee.gid,memberships.project.gid,memberships.section.name,notes"

// Client talks to the Asana API with a personal access token
type Client struct {
	rest *rest.Client
}

// NewClient creates a client. A missing token is a configuration error.
func NewClient(baseURL, token string, timeout time.Duration, opts ...rest.Option) (*Client, error) {
	if token == "" {
		return nil, &config.Error{Key: "asana.token", Err: config.ErrMissingCredential}
	}
	opts = append([]rest.Option{
		rest.WithHeader("Authorization", "Bearer "+token),
		rest.WithTimeout(timeout),
	}, opts...)
	return &Client{rest: rest.NewClient(baseURL, opts...)}, nil
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// ListTasks returns the incomplete tasks of a project (completed_since=now)
func (c *Client) ListTasks(ctx context.Context, projectGID string) ([]Task, error) {
	query := url.Values{
		"opt_fields":      {taskFields},
		"completed_since": {"now"},
	}
	var out envelope[[]Task]
	if err := c.rest.GetJSON(ctx, "/projects/"+url.PathEscape(projectGID)+"/tasks", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return out.Data, nil
}

// ListSections returns the sections of a project
func (c *Client) ListSections(ctx context.Context, projectGID string) ([]Section, error) {
	var out envelope[[]Section]
	if err := c.rest.GetJSON(ctx, "/projects/"+url.PathEscape(projectGID)+"/sections", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return out.Data, nil
}

// AddComment posts a story on a task
func (c *Client) AddComment(ctx context.Context, taskGID, text string) error {
	body := envelope[map[string]string]{Data: map[string]string{"text": text}}
	_, err := c.rest.Expect(ctx, http.MethodPost, "/tasks/"+url.PathEscape(taskGID)+"/stories", nil, body, http.StatusOK, http.StatusCreated)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// MoveTask adds a task to a section, removing it from its previous section in that project
func (c *Client) MoveTask(ctx context.Context, sectionGID, taskGID string) error {
	body := envelope[map[string]string]{Data: map[string]string{"task": taskGID}}
	_, err := c.rest.Expect(ctx, http.MethodPost, "/sections/"+url.PathEscape(sectionGID)+"/addTask", nil, body, http.StatusOK)
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	return nil
}
