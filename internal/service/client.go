package service

import (
	"context"
	"errors"
)

// Sentinel errors reported by Client implementations.
var (
	// ErrNotFound indicates the requested task or list does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the API token is missing, expired or revoked.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the API rejected the request due to rate limits.
	ErrRateLimited = errors.New("rate limited")
)

// Client defines the interface for ClickUp backend operations.
// All ClickUp API calls go through this interface; the operations layer
// never talks HTTP directly.
type Client interface {
	// GetTask fetches a task by its platform-assigned ID.
	GetTask(ctx context.Context, taskID string) (Task, error)

	// GetTaskByCustomID fetches a task by its custom (external) ID.
	// listID optionally scopes the lookup; empty means workspace-wide.
	GetTaskByCustomID(ctx context.Context, customID, listID string) (Task, error)

	// GetTasks returns the tasks in a list, filtered per filters.
	GetTasks(ctx context.Context, listID string, filters TaskFilters) ([]Task, error)

	// CreateTask creates a task in the given list.
	CreateTask(ctx context.Context, listID string, data CreateTaskData) (Task, error)

	// UpdateTask applies a sparse patch to a task.
	UpdateTask(ctx context.Context, taskID string, data UpdateTaskData) (Task, error)

	// DeleteTask permanently deletes a task.
	DeleteTask(ctx context.Context, taskID string) error

	// MoveTask moves a task to another list and returns the moved task.
	MoveTask(ctx context.Context, taskID, listID string) (Task, error)

	// DuplicateTask copies a task. listID is the destination list; empty
	// duplicates in place.
	DuplicateTask(ctx context.Context, taskID, listID string) (Task, error)

	// ListLists returns every list in the workspace.
	ListLists(ctx context.Context) ([]TaskList, error)

	// GetTaskComments returns comments on a task, newest first.
	GetTaskComments(ctx context.Context, taskID string, q CommentQuery) ([]Comment, error)

	// CreateTaskComment adds a comment to a task. assignee is an optional
	// user ID to assign the comment to.
	CreateTaskComment(ctx context.Context, taskID, text string, notifyAll bool, assignee *int) (Comment, error)
}
