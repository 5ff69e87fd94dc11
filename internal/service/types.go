// Package service defines the backend-agnostic types and client interface
// for ClickUp task operations.
package service

import "fmt"

// Priority is a ClickUp task priority level.
// The zero value means "no priority set".
type Priority int

// Priority levels as used by the ClickUp API.
const (
	PriorityNone   Priority = 0
	PriorityUrgent Priority = 1
	PriorityHigh   Priority = 2
	PriorityNormal Priority = 3
	PriorityLow    Priority = 4
)

// String returns the human-readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "none"
	}
}

// ToPriority converts a raw numeric priority to a typed Priority.
// Valid values are 1 (urgent) through 4 (low).
func ToPriority(v int) (Priority, error) {
	if v < 1 || v > 4 {
		return PriorityNone, fmt.Errorf("invalid priority %d: must be 1 (urgent) to 4 (low)", v)
	}
	return Priority(v), nil
}

// Task represents a single ClickUp task.
type Task struct {
	ID          string
	CustomID    string
	Name        string
	Description string
	Status      string
	Priority    Priority
	DueDate     *int64 // unix milliseconds, nil if no due date
	ListID      string
	ListName    string
	URL         string
}

// TaskList represents a ClickUp list.
type TaskList struct {
	ID   string
	Name string
}

// Comment represents a task comment.
type Comment struct {
	ID   string
	Text string
	User string
	Date int64 // unix milliseconds
}

// CreateTaskData carries the fields for a new task.
// Nil pointer fields are omitted from the API request entirely.
type CreateTaskData struct {
	Name                string
	Description         *string
	MarkdownDescription *string
	Status              *string
	Priority            *Priority
	DueDate             *int64
}

// UpdateTaskData is a sparse patch for a task. A nil field means "leave
// unchanged server-side", which is distinct from a pointer to a zero value.
type UpdateTaskData struct {
	Name                *string
	Description         *string
	MarkdownDescription *string
	Status              *string
	Priority            *Priority
	DueDate             *int64
}

// IsEmpty reports whether the patch carries no fields at all.
func (d UpdateTaskData) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.MarkdownDescription == nil &&
		d.Status == nil && d.Priority == nil && d.DueDate == nil
}

// TaskFilters controls a list-of-tasks query. All fields are optional and
// independent; a nil field means "use the server default".
type TaskFilters struct {
	Subtasks *bool
	Statuses []string
	Page     *int
	OrderBy  *string
	Reverse  *bool
}

// CommentQuery carries pagination cursors for comment reads.
type CommentQuery struct {
	Start   *int64
	StartID *string
}
