package ops

import (
	"context"
	"errors"
	"strings"

	"github.com/colinmollenhour/clickup-mcp-server/internal/bulk"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// Handler exposes the task operations. It composes identity validation,
// resolution and payload building around a service.Client, and delegates
// batches to the bulk executor. Construct one per process and share it; it
// holds no mutable state.
type Handler struct {
	client       service.Client
	resolver     *Resolver
	bulkDefaults bulk.Options
}

// NewHandler creates a handler. bulkDefaults fills in execution options for
// bulk calls that do not supply their own.
func NewHandler(client service.Client, bulkDefaults bulk.Options) *Handler {
	return &Handler{
		client:       client,
		resolver:     NewResolver(client),
		bulkDefaults: bulkDefaults.Normalize(),
	}
}

// Resolver returns the handler's identity resolver.
func (h *Handler) Resolver() *Resolver { return h.resolver }

// CreateTaskParams carries the inputs for CreateTask.
type CreateTaskParams struct {
	List ListIdentifier
	Name string

	Description         *string
	MarkdownDescription *string
	Status              *string
	Priority            *int
	DueDate             *string
}

// CreateTask creates a task in the identified list.
func (h *Handler) CreateTask(ctx context.Context, p CreateTaskParams) (service.Task, error) {
	data, err := buildCreateData(p)
	if err != nil {
		return service.Task{}, err
	}

	listID, err := h.resolver.ResolveList(ctx, p.List)
	if err != nil {
		return service.Task{}, err
	}

	return h.client.CreateTask(ctx, listID, data)
}

// buildCreateData validates and normalizes create parameters before any
// network access.
func buildCreateData(p CreateTaskParams) (service.CreateTaskData, error) {
	if strings.TrimSpace(p.Name) == "" {
		return service.CreateTaskData{}, newValidationError("name", "task name is required")
	}

	data := service.CreateTaskData{
		Name:                p.Name,
		Description:         p.Description,
		MarkdownDescription: p.MarkdownDescription,
		Status:              p.Status,
	}

	if p.Priority != nil {
		prio, err := service.ToPriority(*p.Priority)
		if err != nil {
			return service.CreateTaskData{}, newValidationError("priority", err.Error())
		}
		data.Priority = &prio
	}

	if p.DueDate != nil {
		ms, err := ParseDueDate(*p.DueDate)
		if err != nil {
			return service.CreateTaskData{}, err
		}
		data.DueDate = &ms
	}

	return data, nil
}

// GetTask fetches a single task.
func (h *Handler) GetTask(ctx context.Context, id TaskIdentifier) (service.Task, error) {
	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return service.Task{}, err
	}
	return h.client.GetTask(ctx, taskID)
}

// GetTasks returns the tasks in the identified list.
func (h *Handler) GetTasks(ctx context.Context, list ListIdentifier, filters service.TaskFilters) ([]service.Task, error) {
	listID, err := h.resolver.ResolveList(ctx, list)
	if err != nil {
		return nil, err
	}
	return h.client.GetTasks(ctx, listID, filters)
}

// UpdateTask applies a sparse patch to the identified task.
func (h *Handler) UpdateTask(ctx context.Context, id TaskIdentifier, p UpdateTaskParams) (service.Task, error) {
	if err := p.Validate(); err != nil {
		return service.Task{}, err
	}
	data, err := buildUpdateData(p)
	if err != nil {
		return service.Task{}, err
	}

	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return service.Task{}, err
	}
	return h.client.UpdateTask(ctx, taskID, data)
}

// MoveTask moves the identified task into the identified destination list.
func (h *Handler) MoveTask(ctx context.Context, id TaskIdentifier, dest ListIdentifier) (service.Task, error) {
	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return service.Task{}, err
	}
	listID, err := h.resolver.ResolveList(ctx, dest)
	if err != nil {
		return service.Task{}, err
	}
	return h.client.MoveTask(ctx, taskID, listID)
}

// DuplicateTask copies the identified task. The destination is optional; a
// zero dest duplicates in place.
func (h *Handler) DuplicateTask(ctx context.Context, id TaskIdentifier, dest ListIdentifier) (service.Task, error) {
	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return service.Task{}, err
	}

	listID := ""
	if !dest.IsZero() {
		listID, err = h.resolver.ResolveList(ctx, dest)
		if err != nil {
			return service.Task{}, err
		}
	}
	return h.client.DuplicateTask(ctx, taskID, listID)
}

// DeleteTask deletes the identified task. It returns a success marker rather
// than the deleted entity, which no longer exists to describe.
func (h *Handler) DeleteTask(ctx context.Context, id TaskIdentifier) (bool, error) {
	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return false, err
	}
	if err := h.client.DeleteTask(ctx, taskID); err != nil {
		return false, err
	}
	return true, nil
}

// GetLists returns every list in the workspace.
func (h *Handler) GetLists(ctx context.Context) ([]service.TaskList, error) {
	return h.client.ListLists(ctx)
}

// GetTaskComments returns the comments on the identified task.
func (h *Handler) GetTaskComments(ctx context.Context, id TaskIdentifier, q service.CommentQuery) ([]service.Comment, error) {
	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.client.GetTaskComments(ctx, taskID, q)
}

// CreateCommentParams carries the inputs for CreateTaskComment.
type CreateCommentParams struct {
	Text      string
	NotifyAll bool
	Assignee  *int
}

// CreateTaskComment adds a comment to the identified task. Lookup failures
// are reported with the human-supplied names; other errors pass through
// unchanged.
func (h *Handler) CreateTaskComment(ctx context.Context, id TaskIdentifier, p CreateCommentParams) (service.Comment, error) {
	if strings.TrimSpace(p.Text) == "" {
		return service.Comment{}, newValidationError("commentText", "comment text is required")
	}

	taskID, err := h.resolver.ResolveTask(ctx, id)
	if err != nil {
		return service.Comment{}, err
	}

	comment, err := h.client.CreateTaskComment(ctx, taskID, p.Text, p.NotifyAll, p.Assignee)
	if err != nil {
		// The task can disappear between resolution and the comment
		// call; report it by the name the caller used.
		if errors.Is(err, service.ErrNotFound) {
			if id.TaskName != "" {
				return service.Comment{}, &NotFoundError{Kind: "task", Name: id.TaskName, ListName: id.ListName}
			}
			return service.Comment{}, &NotFoundError{Kind: "task", ID: taskID}
		}
		return service.Comment{}, err
	}
	return comment, nil
}
