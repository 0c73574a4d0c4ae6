// Package gitlab implements the GitLab side of hv: project id lookup with a
// memo cache, concurrent merge request fetch, and the approve-then-merge pipeline.
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/rest"
)

// ErrProjectNotFound is returned when a project path cannot be resolved to an id
var ErrProjectNotFound = errors.New("project not found")

const apiPrefix = "/api/v4"

// ProjectLookup resolves a project path to its numeric id
type ProjectLookup interface {
	LookupProjectID(ctx context.Context, path string) (int, error)
}

// MergeRequestLister lists open merge requests of a project
type MergeRequestLister interface {
	ListOpenMergeRequests(ctx context.Context, projectID int) ([]MergeRequest, error)
}

// Merger approves and merges merge requests
type Merger interface {
	GetApprovalState(ctx context.Context, projectID, iid int) (*ApprovalState, error)
	Approve(ctx context.Context, projectID, iid int) error
	Merge(ctx context.Context, projectID, iid int) error
}

// ReviewLister lists open merge requests awaiting a reviewer
type ReviewLister interface {
	ListReviewMergeRequests(ctx context.Context, username string) ([]MergeRequest, error)
}

// API is every GitLab call hv makes
type API interface {
	ProjectLookup
	MergeRequestLister
	Merger
	ReviewLister
}

// Client talks to the GitLab REST API v4
type Client struct {
	rest *rest.Client
}

var (
	_ ProjectLookup      = (*Client)(nil)
	_ MergeRequestLister = (*Client)(nil)
	_ Merger             = (*Client)(nil)
	_ ReviewLister       = (*Client)(nil)
	_ API                = (*Client)(nil)
)

// NewClient creates a GitLab client. A missing base URL or token is a
// configuration error.
func NewClient(baseURL, token string, timeout time.Duration, opts ...rest.Option) (*Client, error) {
	if baseURL == "" {
		return nil, config.Errorf("gitlab.default_gitlab_url", "GitLab URL is not configured")
	}
	if token == "" {
		return nil, &config.Error{Key: "gitlab.token", Err: config.ErrMissingCredential}
	}

	opts = append([]rest.Option{
		rest.WithHeader("PRIVATE-TOKEN", token),
		rest.WithTimeout(timeout),
	}, opts...)

	return &Client{rest: rest.NewClient(baseURL, opts...)}, nil
}

// LookupProjectID resolves a full project path. Any non-200 response or
// transport failure wraps ErrProjectNotFound.
func (c *Client) LookupProjectID(ctx context.Context, path string) (int, error) {
	var project Project
	if err := c.rest.GetJSON(ctx, apiPrefix+"/projects/"+url.PathEscape(path), nil, &project); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrProjectNotFound, path, err)
	}
	return project.ID, nil
}

// ListOpenMergeRequests lists the opened merge requests of a project in API order
func (c *Client) ListOpenMergeRequests(ctx context.Context, projectID int) ([]MergeRequest, error) {
	var mrs []MergeRequest
	err := c.rest.GetJSON(ctx, projectPath(projectID, "/merge_requests"), url.Values{"state": {"opened"}}, &mrs)
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests of project %d: %w", projectID, err)
	}
	return mrs, nil
}

// ListReviewMergeRequests lists opened merge requests across all projects
// where username is a reviewer.
func (c *Client) ListReviewMergeRequests(ctx context.Context, username string) ([]MergeRequest, error) {
	query := url.Values{
		"scope":             {"all"},
		"state":             {"opened"},
		"reviewer_username": {username},
	}
	var mrs []MergeRequest
	if err := c.rest.GetJSON(ctx, apiPrefix+"/merge_requests", query, &mrs); err != nil {
		return nil, fmt.Errorf("failed to get review merge requests: %w", err)
	}
	return mrs, nil
}

// GetApprovalState returns the approval state of a merge request for the token's user
func (c *Client) GetApprovalState(ctx context.Context, projectID, iid int) (*ApprovalState, error) {
	var state ApprovalState
	if err := c.rest.GetJSON(ctx, mrPath(projectID, iid, "/approvals"), nil, &state); err != nil {
		return nil, fmt.Errorf("failed to get approval state: %w", err)
	}
	return &state, nil
}

// Approve approves a merge request. GitLab answers 201 on success.
func (c *Client) Approve(ctx context.Context, projectID, iid int) error {
	_, err := c.rest.Expect(ctx, http.MethodPost, mrPath(projectID, iid, "/approve"), nil, nil, http.StatusCreated)
	if err != nil {
		return fmt.Errorf("failed to approve: %w", err)
	}
	return nil
}

// Merge accepts a merge request. Only 200 counts as merged.
func (c *Client) Merge(ctx context.Context, projectID, iid int) error {
	_, err := c.rest.Expect(ctx, http.MethodPut, mrPath(projectID, iid, "/merge"), nil, nil, http.StatusOK)
	if err != nil {
		return err
	}
	return nil
}

func projectPath(projectID int, suffix string) string {
	return apiPrefix + "/projects/" + strconv.Itoa(projectID) + suffix
}

func mrPath(projectID, iid int, suffix string) string {
	return projectPath(projectID, "/merge_requests/"+strconv.Itoa(iid)+suffix)
}
