// Package ops implements the task-operation layer: identity validation and
// resolution, sparse update payloads, and single and bulk operation handlers.
package ops

import "regexp"

// TaskIdentifier carries the identifying information for one task. Exactly
// one of the accepted combinations must be present: TaskID, CustomTaskID, or
// TaskName together with ListName. ListName alone also scopes custom-ID
// lookups as a disambiguation hint.
type TaskIdentifier struct {
	TaskID       string
	CustomTaskID string
	TaskName     string
	ListName     string
}

// Validate checks that enough identifying information is present to attempt
// resolution. It is a pure check and must run before any network access.
func (id TaskIdentifier) Validate() error {
	if id.TaskID != "" || id.CustomTaskID != "" {
		return nil
	}
	if id.TaskName != "" && id.ListName != "" {
		return nil
	}
	if id.TaskName != "" {
		return newValidationError("listName", "listName is required when identifying a task by taskName")
	}
	return newValidationError("", "need taskId, customTaskId, or taskName together with listName to identify a task")
}

// ListIdentifier carries the identifying information for one list.
type ListIdentifier struct {
	ListID   string
	ListName string
}

// Validate checks that at least one identifying field is present.
func (id ListIdentifier) Validate() error {
	if id.ListID == "" && id.ListName == "" {
		return newValidationError("", "need listId or listName to identify a list")
	}
	return nil
}

// IsZero reports whether no identifying field was supplied at all.
func (id ListIdentifier) IsZero() bool {
	return id.ListID == "" && id.ListName == ""
}

// customIDPattern matches custom task IDs like "DEV-1234". Raw platform IDs
// never contain an uppercase prefix followed by a dash.
var customIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-\d+$`)

// looksLikeCustomID reports whether s matches the custom task ID shape.
func looksLikeCustomID(s string) bool {
	return customIDPattern.MatchString(s)
}
