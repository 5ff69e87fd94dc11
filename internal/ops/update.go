package ops

import (
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// UpdateTaskParams carries the updatable task fields. A nil field was not
// supplied by the caller and is omitted from the patch; a non-nil pointer to
// a zero value (for example an empty string) is an explicit update.
type UpdateTaskParams struct {
	Name                *string
	Description         *string
	MarkdownDescription *string
	Status              *string
	Priority            *int
	DueDate             *string
}

// Validate rejects an update that carries no fields at all.
func (p UpdateTaskParams) Validate() error {
	if p.Name == nil && p.Description == nil && p.MarkdownDescription == nil &&
		p.Status == nil && p.Priority == nil && p.DueDate == nil {
		return newValidationError("", "at least one field to update is required")
	}
	return nil
}

// buildUpdateData assembles a sparse patch from the supplied fields only.
// Priority passes through typed coercion and due dates through the date
// parser; both reject invalid input before any network call.
func buildUpdateData(p UpdateTaskParams) (service.UpdateTaskData, error) {
	data := service.UpdateTaskData{
		Name:                p.Name,
		Description:         p.Description,
		MarkdownDescription: p.MarkdownDescription,
		Status:              p.Status,
	}

	if p.Priority != nil {
		prio, err := service.ToPriority(*p.Priority)
		if err != nil {
			return service.UpdateTaskData{}, newValidationError("priority", err.Error())
		}
		data.Priority = &prio
	}

	if p.DueDate != nil {
		ms, err := ParseDueDate(*p.DueDate)
		if err != nil {
			return service.UpdateTaskData{}, err
		}
		data.DueDate = &ms
	}

	return data, nil
}
