package ops

import (
	"context"
	"errors"
	"strings"

	"github.com/colinmollenhour/clickup-mcp-server/internal/logger"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// Resolver turns validated identifiers into concrete platform IDs.
type Resolver struct {
	client service.Client
}

// NewResolver creates a resolver backed by the given client.
func NewResolver(client service.Client) *Resolver {
	return &Resolver{client: client}
}

// ResolveTask resolves a task identifier to a platform task ID.
//
// Precedence:
//  1. an explicit customTaskId, or a taskId that matches the custom-ID
//     shape, is looked up as a custom ID, scoped by listName when supplied;
//  2. a raw taskId is used directly with no lookup;
//  3. otherwise listName is resolved to a list and the list's tasks are
//     searched for an exact taskName match.
//
// Zero or multiple name matches are hard errors, never a heuristic pick.
func (r *Resolver) ResolveTask(ctx context.Context, id TaskIdentifier) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	log := logger.FromContext(ctx)

	customID := id.CustomTaskID
	if customID == "" && looksLikeCustomID(id.TaskID) {
		log.Debug("treating taskId as custom ID", "taskId", id.TaskID)
		customID = id.TaskID
	}

	if customID != "" {
		return r.resolveCustomID(ctx, customID, id.ListName)
	}

	if id.TaskID != "" {
		return id.TaskID, nil
	}

	return r.resolveTaskName(ctx, id.TaskName, id.ListName)
}

// resolveCustomID looks up a task by custom ID. The list scope is a
// disambiguation hint: if the list itself cannot be resolved, the lookup
// proceeds unscoped rather than failing.
func (r *Resolver) resolveCustomID(ctx context.Context, customID, listName string) (string, error) {
	log := logger.FromContext(ctx)

	listID := ""
	if listName != "" {
		resolved, err := r.ResolveList(ctx, ListIdentifier{ListName: listName})
		if err == nil {
			listID = resolved
		} else {
			log.Debug("ignoring unresolvable list scope for custom ID lookup",
				"customId", customID, "listName", listName, "err", err)
		}
	}

	task, err := r.client.GetTaskByCustomID(ctx, customID, listID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return "", &NotFoundError{Kind: "task", ID: customID, ListName: listName}
		}
		return "", err
	}
	return task.ID, nil
}

// resolveTaskName searches a list for a task with an exactly matching name.
func (r *Resolver) resolveTaskName(ctx context.Context, taskName, listName string) (string, error) {
	listID, err := r.ResolveList(ctx, ListIdentifier{ListName: listName})
	if err != nil {
		return "", err
	}

	tasks, err := r.client.GetTasks(ctx, listID, service.TaskFilters{})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if nameEqual(t.Name, taskName) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: "task", Name: taskName, ListName: listName}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: "task", Name: taskName, ListName: listName, Candidates: matches}
	}
}

// ResolveList resolves a list identifier to a platform list ID.
func (r *Resolver) ResolveList(ctx context.Context, id ListIdentifier) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	if id.ListID != "" {
		return id.ListID, nil
	}

	lists, err := r.client.ListLists(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, l := range lists {
		if nameEqual(l.Name, id.ListName) {
			matches = append(matches, l.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: "list", Name: id.ListName}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: "list", Name: id.ListName, Candidates: matches}
	}
}

// nameEqual compares names trimmed and case-insensitively.
func nameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
