// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// FakeClient is an in-memory implementation of service.Client for testing.
// It records per-method call counts and supports error injection.
type FakeClient struct {
	mu       sync.RWMutex
	lists    []service.TaskList
	tasks    map[string][]service.Task // listID -> tasks
	comments map[string][]service.Comment
	nextID   int

	// Error injection for testing. A non-nil error is returned by the
	// corresponding method before any state is touched.
	GetTaskErr           error
	GetTaskByCustomIDErr error
	GetTasksErr          error
	CreateTaskErr        error
	UpdateTaskErr        map[string]error // taskID -> error
	DeleteTaskErr        map[string]error
	MoveTaskErr          error
	DuplicateTaskErr     error
	ListListsErr         error
	GetCommentsErr       error
	CreateCommentErr     error

	// Call counters.
	Calls CallCounts

	// LastCreateData records the payload of the most recent CreateTask.
	LastCreateData service.CreateTaskData

	// LastUpdateData records the payload of the most recent UpdateTask.
	LastUpdateData service.UpdateTaskData
}

// CallCounts tracks how many times each client method was invoked.
type CallCounts struct {
	GetTask           int
	GetTaskByCustomID int
	GetTasks          int
	CreateTask        int
	UpdateTask        int
	DeleteTask        int
	MoveTask          int
	DuplicateTask     int
	ListLists         int
	GetTaskComments   int
	CreateTaskComment int
}

// NewFakeClient creates an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		tasks:         make(map[string][]service.Task),
		comments:      make(map[string][]service.Comment),
		UpdateTaskErr: make(map[string]error),
		DeleteTaskErr: make(map[string]error),
	}
}

// AddList adds a list.
func (f *FakeClient) AddList(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Name: name})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds a task to a list and returns it.
func (f *FakeClient) AddTask(listID, taskID, name string) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: taskID, Name: name, Status: "to do", ListID: listID}
	f.tasks[listID] = append(f.tasks[listID], t)
	return t
}

// AddTaskWithCustomID adds a task carrying a custom ID.
func (f *FakeClient) AddTaskWithCustomID(listID, taskID, customID, name string) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: taskID, CustomID: customID, Name: name, Status: "to do", ListID: listID}
	f.tasks[listID] = append(f.tasks[listID], t)
	return t
}

// TasksIn returns a copy of the tasks currently in a list.
func (f *FakeClient) TasksIn(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// GetTask implements service.Client.
func (f *FakeClient) GetTask(ctx context.Context, taskID string) (service.Task, error) {
	f.mu.Lock()
	f.Calls.GetTask++
	f.mu.Unlock()
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if t, ok := f.findTask(taskID); ok {
		return t, nil
	}
	return service.Task{}, service.ErrNotFound
}

// GetTaskByCustomID implements service.Client.
func (f *FakeClient) GetTaskByCustomID(ctx context.Context, customID, listID string) (service.Task, error) {
	f.mu.Lock()
	f.Calls.GetTaskByCustomID++
	f.mu.Unlock()
	if f.GetTaskByCustomIDErr != nil {
		return service.Task{}, f.GetTaskByCustomIDErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for lid, tasks := range f.tasks {
		if listID != "" && lid != listID {
			continue
		}
		for _, t := range tasks {
			if t.CustomID == customID {
				return t, nil
			}
		}
	}
	return service.Task{}, service.ErrNotFound
}

// GetTasks implements service.Client.
func (f *FakeClient) GetTasks(ctx context.Context, listID string, filters service.TaskFilters) ([]service.Task, error) {
	f.mu.Lock()
	f.Calls.GetTasks++
	f.mu.Unlock()
	if f.GetTasksErr != nil {
		return nil, f.GetTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	var out []service.Task
	for _, t := range tasks {
		if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, t.Status) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// CreateTask implements service.Client.
func (f *FakeClient) CreateTask(ctx context.Context, listID string, data service.CreateTaskData) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.CreateTask++
	f.LastCreateData = data
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}
	f.nextID++
	t := service.Task{
		ID:     fmt.Sprintf("task-%d", f.nextID),
		Name:   data.Name,
		ListID: listID,
	}
	if data.Description != nil {
		t.Description = *data.Description
	}
	if data.Status != nil {
		t.Status = *data.Status
	} else {
		t.Status = "to do"
	}
	if data.Priority != nil {
		t.Priority = *data.Priority
	}
	t.DueDate = data.DueDate
	f.tasks[listID] = append(f.tasks[listID], t)
	return t, nil
}

// UpdateTask implements service.Client.
func (f *FakeClient) UpdateTask(ctx context.Context, taskID string, data service.UpdateTaskData) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.UpdateTask++
	f.LastUpdateData = data
	if err := f.UpdateTaskErr[taskID]; err != nil {
		return service.Task{}, err
	}
	for listID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID != taskID {
				continue
			}
			if data.Name != nil {
				t.Name = *data.Name
			}
			if data.Description != nil {
				t.Description = *data.Description
			}
			if data.Status != nil {
				t.Status = *data.Status
			}
			if data.Priority != nil {
				t.Priority = *data.Priority
			}
			if data.DueDate != nil {
				t.DueDate = data.DueDate
			}
			f.tasks[listID][i] = t
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Client.
func (f *FakeClient) DeleteTask(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.DeleteTask++
	if err := f.DeleteTaskErr[taskID]; err != nil {
		return err
	}
	for listID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
				return nil
			}
		}
	}
	return service.ErrNotFound
}

// MoveTask implements service.Client.
func (f *FakeClient) MoveTask(ctx context.Context, taskID, listID string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.MoveTask++
	if f.MoveTaskErr != nil {
		return service.Task{}, f.MoveTaskErr
	}
	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}
	for fromID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[fromID] = append(tasks[:i], tasks[i+1:]...)
				t.ListID = listID
				f.tasks[listID] = append(f.tasks[listID], t)
				return t, nil
			}
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DuplicateTask implements service.Client.
func (f *FakeClient) DuplicateTask(ctx context.Context, taskID, listID string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.DuplicateTask++
	if f.DuplicateTaskErr != nil {
		return service.Task{}, f.DuplicateTaskErr
	}
	orig, ok := f.findTask(taskID)
	if !ok {
		return service.Task{}, service.ErrNotFound
	}
	dest := listID
	if dest == "" {
		dest = orig.ListID
	}
	if _, ok := f.tasks[dest]; !ok {
		return service.Task{}, service.ErrNotFound
	}
	f.nextID++
	copyTask := orig
	copyTask.ID = fmt.Sprintf("task-%d", f.nextID)
	copyTask.ListID = dest
	f.tasks[dest] = append(f.tasks[dest], copyTask)
	return copyTask, nil
}

// ListLists implements service.Client.
func (f *FakeClient) ListLists(ctx context.Context) ([]service.TaskList, error) {
	f.mu.Lock()
	f.Calls.ListLists++
	f.mu.Unlock()
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.TaskList, len(f.lists))
	copy(out, f.lists)
	return out, nil
}

// GetTaskComments implements service.Client.
func (f *FakeClient) GetTaskComments(ctx context.Context, taskID string, q service.CommentQuery) ([]service.Comment, error) {
	f.mu.Lock()
	f.Calls.GetTaskComments++
	f.mu.Unlock()
	if f.GetCommentsErr != nil {
		return nil, f.GetCommentsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if _, ok := f.findTask(taskID); !ok {
		return nil, service.ErrNotFound
	}
	out := make([]service.Comment, len(f.comments[taskID]))
	copy(out, f.comments[taskID])
	return out, nil
}

// CreateTaskComment implements service.Client.
func (f *FakeClient) CreateTaskComment(ctx context.Context, taskID, text string, notifyAll bool, assignee *int) (service.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.CreateTaskComment++
	if f.CreateCommentErr != nil {
		return service.Comment{}, f.CreateCommentErr
	}
	if _, ok := f.findTask(taskID); !ok {
		return service.Comment{}, service.ErrNotFound
	}
	f.nextID++
	c := service.Comment{ID: fmt.Sprintf("comment-%d", f.nextID), Text: text}
	f.comments[taskID] = append(f.comments[taskID], c)
	return c, nil
}

// findTask looks up a task across all lists. Callers hold the lock.
func (f *FakeClient) findTask(taskID string) (service.Task, bool) {
	for _, tasks := range f.tasks {
		for _, t := range tasks {
			if t.ID == taskID {
				return t, true
			}
		}
	}
	return service.Task{}, false
}

func containsStatus(statuses []string, s string) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}
