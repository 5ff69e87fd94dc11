package clickup

import (
	"encoding/json"
	"strconv"

	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// Wire types for the ClickUp REST API v2. Only the fields this client reads
// are mapped.

type taskResponse struct {
	ID          string  `json:"id"`
	CustomID    string  `json:"custom_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	URL         string  `json:"url"`
	Status      struct {
		Status string `json:"status"`
	} `json:"status"`
	Priority *struct {
		ID string `json:"id"`
	} `json:"priority"`
	List struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"list"`
}

func (t taskResponse) toTask() service.Task {
	out := service.Task{
		ID:          t.ID,
		CustomID:    t.CustomID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status.Status,
		ListID:      t.List.ID,
		ListName:    t.List.Name,
		URL:         t.URL,
	}
	if t.Priority != nil {
		if n, err := strconv.Atoi(t.Priority.ID); err == nil {
			out.Priority = service.Priority(n)
		}
	}
	if t.DueDate != nil && *t.DueDate != "" {
		if ms, err := strconv.ParseInt(*t.DueDate, 10, 64); err == nil {
			out.DueDate = &ms
		}
	}
	return out
}

type tasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

// taskRequest is the shared create/update body. Sparse: nil fields are
// omitted so the server leaves them unchanged.
type taskRequest struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	MarkdownDescription *string `json:"markdown_description,omitempty"`
	Status              *string `json:"status,omitempty"`
	Priority            *int    `json:"priority,omitempty"`
	DueDate             *int64  `json:"due_date,omitempty"`
}

func createBody(data service.CreateTaskData) taskRequest {
	body := taskRequest{
		Name:                &data.Name,
		Description:         data.Description,
		MarkdownDescription: data.MarkdownDescription,
		Status:              data.Status,
		DueDate:             data.DueDate,
	}
	if data.Priority != nil {
		p := int(*data.Priority)
		body.Priority = &p
	}
	return body
}

func updateBody(data service.UpdateTaskData) taskRequest {
	body := taskRequest{
		Name:                data.Name,
		Description:         data.Description,
		MarkdownDescription: data.MarkdownDescription,
		Status:              data.Status,
		DueDate:             data.DueDate,
	}
	if data.Priority != nil {
		p := int(*data.Priority)
		body.Priority = &p
	}
	return body
}

type listResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listsResponse struct {
	Lists []listResponse `json:"lists"`
}

type spacesResponse struct {
	Spaces []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"spaces"`
}

type foldersResponse struct {
	Folders []struct {
		ID    string         `json:"id"`
		Name  string         `json:"name"`
		Lists []listResponse `json:"lists"`
	} `json:"folders"`
}

type commentResponse struct {
	ID          string `json:"id"`
	CommentText string `json:"comment_text"`
	Date        string `json:"date"`
	User        struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (c commentResponse) toComment() service.Comment {
	out := service.Comment{
		ID:   c.ID,
		Text: c.CommentText,
		User: c.User.Username,
	}
	if ms, err := strconv.ParseInt(c.Date, 10, 64); err == nil {
		out.Date = ms
	}
	return out
}

type commentsResponse struct {
	Comments []commentResponse `json:"comments"`
}

type createCommentRequest struct {
	CommentText string `json:"comment_text"`
	NotifyAll   bool   `json:"notify_all"`
	Assignee    *int   `json:"assignee,omitempty"`
}

// The comment ID comes back as a bare number on create.
type createCommentResponse struct {
	ID   json.Number `json:"id"`
	Date int64       `json:"date"`
}
