// Package clickup implements the service.Client interface over the ClickUp
// REST API v2.
package clickup

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

const (
	// DefaultBaseURL is the production ClickUp API endpoint.
	DefaultBaseURL = "https://api.clickup.com/api/v2"

	// APITimeout is the per-request timeout.
	APITimeout = 30 * time.Second
)

// Client implements service.Client using the ClickUp REST API.
type Client struct {
	http   *resty.Client
	teamID string
}

// New creates a client authenticated with a personal API token.
func New(cfg *config.Config) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("missing API token (run: clickup-tasks auth, or set CLICKUP_API_TOKEN)")
	}
	if cfg.TeamID == "" {
		return nil, fmt.Errorf("missing workspace ID (run: clickup-tasks auth, or set CLICKUP_TEAM_ID)")
	}

	httpClient := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(APITimeout).
		SetHeader("Authorization", cfg.APIToken).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	httpClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err == nil && r.StatusCode() == http.StatusTooManyRequests
	})

	return &Client{http: httpClient, teamID: cfg.TeamID}, nil
}

// NewWithTokenSource creates a client backed by an OAuth2 token source that
// refreshes access tokens automatically. Used when CLICKUP_OAUTH_TOKEN is set
// instead of a personal API token.
func NewWithTokenSource(ctx context.Context, ts oauth2.TokenSource, teamID string) (*Client, error) {
	if teamID == "" {
		return nil, fmt.Errorf("missing workspace ID (run: clickup-tasks auth, or set CLICKUP_TEAM_ID)")
	}
	httpClient := resty.NewWithClient(oauth2.NewClient(ctx, ts)).
		SetBaseURL(DefaultBaseURL).
		SetTimeout(APITimeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: httpClient, teamID: teamID}, nil
}

// NewWithBaseURL creates a client against an arbitrary endpoint (for testing).
func NewWithBaseURL(baseURL, token, teamID string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(APITimeout).
		SetHeader("Authorization", token)
	return &Client{http: httpClient, teamID: teamID}
}

// GetTask fetches a task by its platform ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (service.Task, error) {
	var out taskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/task/" + taskID)
	if err := c.check(resp, err); err != nil {
		return service.Task{}, err
	}
	return out.toTask(), nil
}

// GetTaskByCustomID fetches a task by custom ID. The lookup is workspace-wide;
// a non-empty listID narrows the match to that list.
func (c *Client) GetTaskByCustomID(ctx context.Context, customID, listID string) (service.Task, error) {
	var out taskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("custom_task_ids", "true").
		SetQueryParam("team_id", c.teamID).
		Get("/task/" + customID)
	if err := c.check(resp, err); err != nil {
		return service.Task{}, err
	}
	task := out.toTask()
	if listID != "" && task.ListID != listID {
		return service.Task{}, fmt.Errorf("custom task %s: %w", customID, service.ErrNotFound)
	}
	return task, nil
}

// GetTasks returns the tasks in a list.
func (c *Client) GetTasks(ctx context.Context, listID string, filters service.TaskFilters) ([]service.Task, error) {
	req := c.http.R().SetContext(ctx)
	if filters.Subtasks != nil {
		req.SetQueryParam("subtasks", strconv.FormatBool(*filters.Subtasks))
	}
	for _, s := range filters.Statuses {
		req.QueryParam.Add("statuses[]", s)
	}
	if filters.Page != nil {
		req.SetQueryParam("page", strconv.Itoa(*filters.Page))
	}
	if filters.OrderBy != nil {
		req.SetQueryParam("order_by", *filters.OrderBy)
	}
	if filters.Reverse != nil {
		req.SetQueryParam("reverse", strconv.FormatBool(*filters.Reverse))
	}

	var out tasksResponse
	resp, err := req.SetResult(&out).Get("/list/" + listID + "/task")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	tasks := make([]service.Task, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		tasks = append(tasks, t.toTask())
	}
	return tasks, nil
}

// CreateTask creates a task in a list.
func (c *Client) CreateTask(ctx context.Context, listID string, data service.CreateTaskData) (service.Task, error) {
	var out taskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createBody(data)).
		SetResult(&out).
		Post("/list/" + listID + "/task")
	if err := c.check(resp, err); err != nil {
		return service.Task{}, err
	}
	return out.toTask(), nil
}

// UpdateTask applies a sparse patch to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, data service.UpdateTaskData) (service.Task, error) {
	var out taskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(updateBody(data)).
		SetResult(&out).
		Put("/task/" + taskID)
	if err := c.check(resp, err); err != nil {
		return service.Task{}, err
	}
	return out.toTask(), nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/task/" + taskID)
	return c.check(resp, err)
}

// MoveTask moves a task to another list. The API has no native move, so the
// task is recreated in the destination list and the original deleted.
func (c *Client) MoveTask(ctx context.Context, taskID, listID string) (service.Task, error) {
	moved, err := c.copyTask(ctx, taskID, listID)
	if err != nil {
		return service.Task{}, err
	}
	if err := c.DeleteTask(ctx, taskID); err != nil {
		return service.Task{}, fmt.Errorf("task copied to %s as %s but original not deleted: %w", listID, moved.ID, err)
	}
	return moved, nil
}

// DuplicateTask copies a task, in place when listID is empty.
func (c *Client) DuplicateTask(ctx context.Context, taskID, listID string) (service.Task, error) {
	return c.copyTask(ctx, taskID, listID)
}

// copyTask recreates a task in the given list, defaulting to its own list.
func (c *Client) copyTask(ctx context.Context, taskID, listID string) (service.Task, error) {
	orig, err := c.GetTask(ctx, taskID)
	if err != nil {
		return service.Task{}, err
	}
	if listID == "" {
		listID = orig.ListID
	}

	data := service.CreateTaskData{Name: orig.Name, DueDate: orig.DueDate}
	if orig.Description != "" {
		data.Description = &orig.Description
	}
	if orig.Status != "" {
		data.Status = &orig.Status
	}
	if orig.Priority != service.PriorityNone {
		data.Priority = &orig.Priority
	}
	return c.CreateTask(ctx, listID, data)
}

// ListLists returns every list in the workspace, walking spaces, their
// folders, and folderless lists.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	var spaces spacesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&spaces).
		Get("/team/" + c.teamID + "/space")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	var out []service.TaskList
	for _, space := range spaces.Spaces {
		var folderless listsResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&folderless).
			Get("/space/" + space.ID + "/list")
		if err := c.check(resp, err); err != nil {
			return nil, err
		}
		for _, l := range folderless.Lists {
			out = append(out, service.TaskList{ID: l.ID, Name: l.Name})
		}

		var folders foldersResponse
		resp, err = c.http.R().
			SetContext(ctx).
			SetResult(&folders).
			Get("/space/" + space.ID + "/folder")
		if err := c.check(resp, err); err != nil {
			return nil, err
		}
		for _, f := range folders.Folders {
			for _, l := range f.Lists {
				out = append(out, service.TaskList{ID: l.ID, Name: l.Name})
			}
		}
	}
	return out, nil
}

// GetTaskComments returns comments on a task.
func (c *Client) GetTaskComments(ctx context.Context, taskID string, q service.CommentQuery) ([]service.Comment, error) {
	req := c.http.R().SetContext(ctx)
	if q.Start != nil {
		req.SetQueryParam("start", strconv.FormatInt(*q.Start, 10))
	}
	if q.StartID != nil {
		req.SetQueryParam("start_id", *q.StartID)
	}

	var out commentsResponse
	resp, err := req.SetResult(&out).Get("/task/" + taskID + "/comment")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	comments := make([]service.Comment, 0, len(out.Comments))
	for _, cm := range out.Comments {
		comments = append(comments, cm.toComment())
	}
	return comments, nil
}

// CreateTaskComment adds a comment to a task.
func (c *Client) CreateTaskComment(ctx context.Context, taskID, text string, notifyAll bool, assignee *int) (service.Comment, error) {
	var out createCommentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createCommentRequest{CommentText: text, NotifyAll: notifyAll, Assignee: assignee}).
		SetResult(&out).
		Post("/task/" + taskID + "/comment")
	if err := c.check(resp, err); err != nil {
		return service.Comment{}, err
	}
	return service.Comment{ID: out.ID.String(), Text: text, Date: out.Date}, nil
}

// check maps transport errors and API status codes onto the service error
// taxonomy.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		if resp != nil && resp.Request != nil {
			if ctxErr := resp.Request.Context().Err(); ctxErr != nil {
				return ctxErr
			}
		}
		return fmt.Errorf("clickup: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return service.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: check your API token", service.ErrUnauthorized)
	case http.StatusTooManyRequests:
		return service.ErrRateLimited
	default:
		return fmt.Errorf("clickup: %s: %s", resp.Status(), resp.String())
	}
}
