package ops

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/colinmollenhour/clickup-mcp-server/internal/bulk"
	"github.com/colinmollenhour/clickup-mcp-server/internal/logger"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// BulkCreateItem carries the fields for one task in a bulk create. All tasks
// in the batch land in the same list.
type BulkCreateItem struct {
	Name                string
	Description         *string
	MarkdownDescription *string
	Status              *string
	Priority            *int
	DueDate             *string
}

// BulkUpdateItem pairs a task identity with the fields to update.
type BulkUpdateItem struct {
	Task   TaskIdentifier
	Fields UpdateTaskParams
}

// bulkOptions fills in the handler defaults when the caller supplied none.
func (h *Handler) bulkOptions(opts *bulk.Options) bulk.Options {
	if opts == nil {
		return h.bulkDefaults
	}
	return opts.Normalize()
}

// validateBatch rejects a malformed batch container before any per-item work.
func validateBatch(n int) error {
	if n == 0 {
		return newValidationError("tasks", "at least one task is required")
	}
	return nil
}

// BulkCreateTasks creates a batch of tasks in one list. Per-item payloads are
// validated up front; the batch is rejected as a whole if any payload is
// invalid. The returned result splits created tasks from failed items.
func (h *Handler) BulkCreateTasks(ctx context.Context, list ListIdentifier, items []BulkCreateItem, opts *bulk.Options) (*bulk.BatchResult[service.CreateTaskData, service.Task], error) {
	if err := validateBatch(len(items)); err != nil {
		return nil, err
	}

	listID, err := h.resolver.ResolveList(ctx, list)
	if err != nil {
		return nil, err
	}

	payloads := make([]service.CreateTaskData, len(items))
	for i, item := range items {
		data, err := buildCreateData(CreateTaskParams{
			Name:                item.Name,
			Description:         item.Description,
			MarkdownDescription: item.MarkdownDescription,
			Status:              item.Status,
			Priority:            item.Priority,
			DueDate:             item.DueDate,
		})
		if err != nil {
			return nil, err
		}
		payloads[i] = data
	}

	logger.FromContext(ctx).Debug("bulk create delegating", "list", listID, "count", len(payloads))
	return bulk.Run(ctx, payloads, h.bulkOptions(opts), func(ctx context.Context, data service.CreateTaskData) (service.Task, error) {
		return h.client.CreateTask(ctx, listID, data)
	})
}

// ResolvedUpdate is one fully-resolved bulk update ready for execution.
type ResolvedUpdate struct {
	TaskID string
	Data   service.UpdateTaskData
}

// BulkUpdateTasks updates a batch of tasks. Every item's identity is resolved
// concurrently before any update is executed; a single resolution failure
// aborts the whole batch.
func (h *Handler) BulkUpdateTasks(ctx context.Context, items []BulkUpdateItem, opts *bulk.Options) (*bulk.BatchResult[ResolvedUpdate, service.Task], error) {
	if err := validateBatch(len(items)); err != nil {
		return nil, err
	}

	// Validate payload shapes before spending lookups on identities.
	for _, item := range items {
		if err := item.Fields.Validate(); err != nil {
			return nil, err
		}
	}

	updates := make([]ResolvedUpdate, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		item := items[i]
		idx := i
		g.Go(func() error {
			taskID, err := h.resolver.ResolveTask(gctx, item.Task)
			if err != nil {
				return err
			}
			data, err := buildUpdateData(item.Fields)
			if err != nil {
				return err
			}
			updates[idx] = ResolvedUpdate{TaskID: taskID, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("bulk update delegating", "count", len(updates))
	return bulk.Run(ctx, updates, h.bulkOptions(opts), func(ctx context.Context, u ResolvedUpdate) (service.Task, error) {
		return h.client.UpdateTask(ctx, u.TaskID, u.Data)
	})
}

// BulkMoveTasks moves a batch of tasks into one destination list. The
// destination is validated before any per-item resolution, since a batch
// without one can never succeed.
func (h *Handler) BulkMoveTasks(ctx context.Context, items []TaskIdentifier, target ListIdentifier, opts *bulk.Options) (*bulk.BatchResult[string, service.Task], error) {
	if err := validateBatch(len(items)); err != nil {
		return nil, err
	}
	if target.IsZero() {
		return nil, newValidationError("", "either targetListId or targetListName must be provided")
	}

	targetID, err := h.resolver.ResolveList(ctx, target)
	if err != nil {
		return nil, err
	}

	taskIDs, err := h.resolveAll(ctx, items)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("bulk move delegating", "target", targetID, "count", len(taskIDs))
	return bulk.Run(ctx, taskIDs, h.bulkOptions(opts), func(ctx context.Context, taskID string) (service.Task, error) {
		return h.client.MoveTask(ctx, taskID, targetID)
	})
}

// BulkDeleteTasks deletes a batch of tasks. The returned slice holds one
// boolean per resolved task, in input order: true when the delete succeeded.
func (h *Handler) BulkDeleteTasks(ctx context.Context, items []TaskIdentifier, opts *bulk.Options) ([]bool, error) {
	if err := validateBatch(len(items)); err != nil {
		return nil, err
	}

	taskIDs, err := h.resolveAll(ctx, items)
	if err != nil {
		return nil, err
	}

	// Items carry their input index so duplicate identities resolving to
	// the same task keep independent outcomes.
	type deleteItem struct {
		idx int
		id  string
	}
	work := make([]deleteItem, len(taskIDs))
	for i, id := range taskIDs {
		work[i] = deleteItem{idx: i, id: id}
	}

	result, err := bulk.Run(ctx, work, h.bulkOptions(opts), func(ctx context.Context, it deleteItem) (int, error) {
		if err := h.client.DeleteTask(ctx, it.id); err != nil {
			return 0, err
		}
		return it.idx, nil
	})
	if err != nil {
		return nil, err
	}

	deleted := make([]bool, len(taskIDs))
	for _, idx := range result.Successful {
		deleted[idx] = true
	}
	return deleted, nil
}

// resolveAll resolves every identity concurrently. Resolutions are issued
// without waiting on each other; the first failure cancels the siblings and
// fails the whole batch, and no result is returned until all in-flight
// lookups have settled.
func (h *Handler) resolveAll(ctx context.Context, items []TaskIdentifier) ([]string, error) {
	ids := make([]string, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		item := items[i]
		idx := i
		g.Go(func() error {
			taskID, err := h.resolver.ResolveTask(gctx, item)
			if err != nil {
				return err
			}
			ids[idx] = taskID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
