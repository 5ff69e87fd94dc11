package ops

import (
	"fmt"
	"strings"
)

// ValidationError indicates the caller-supplied parameters are insufficient
// or malformed. It is always raised before any network access and is never
// retried.
type ValidationError struct {
	// Field names the offending parameter when one can be singled out.
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates a name-based lookup matched nothing. It carries the
// human-supplied names so the message is actionable without another lookup.
type NotFoundError struct {
	Kind     string // "task" or "list"
	Name     string // human-supplied name, if resolution was by name
	ListName string // containing list, if one was supplied
	ID       string // raw or custom ID, if resolution was by ID
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Name != "" && e.ListName != "":
		return fmt.Sprintf("%s %q not found in list %q", e.Kind, e.Name, e.ListName)
	case e.Name != "":
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	default:
		return fmt.Sprintf("%s with ID %q not found", e.Kind, e.ID)
	}
}

// AmbiguousError indicates a name-based lookup matched more than one entity.
// Kept distinct from NotFoundError so callers can tell "no such name" from
// "name is not unique".
type AmbiguousError struct {
	Kind       string
	Name       string
	ListName   string
	Candidates []string // IDs of the matching entities
}

func (e *AmbiguousError) Error() string {
	where := ""
	if e.ListName != "" {
		where = fmt.Sprintf(" in list %q", e.ListName)
	}
	return fmt.Sprintf("%s name %q is ambiguous%s: matches %s",
		e.Kind, e.Name, where, strings.Join(e.Candidates, ", "))
}
