// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// FormatTask prints the full detail block for a single task.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:       %s\n", task.ID)
	if task.CustomID != "" {
		fmt.Fprintf(w, "custom:   %s\n", task.CustomID)
	}
	fmt.Fprintf(w, "name:     %s\n", normalizeName(task.Name))
	fmt.Fprintf(w, "status:   %s\n", task.Status)
	if task.Priority != service.PriorityNone {
		fmt.Fprintf(w, "priority: %s\n", task.Priority)
	}
	if task.DueDate != nil {
		fmt.Fprintf(w, "due:      %s\n", FormatMillis(*task.DueDate))
	}
	if task.ListName != "" {
		fmt.Fprintf(w, "list:     %s\n", task.ListName)
	}
	if task.URL != "" {
		fmt.Fprintf(w, "url:      %s\n", task.URL)
	}
}

// FormatTaskLine prints a one-line task summary for listings.
// Format: "{ID:<12}  {STATUS:<14}  {NAME}\n"
func FormatTaskLine(w io.Writer, task service.Task) {
	name := normalizeName(task.Name)
	if task.CustomID != "" {
		name = task.CustomID + "  " + name
	}
	fmt.Fprintf(w, "%-12s  %-14s  %s\n", task.ID, task.Status, name)
}

// FormatListName prints a list line for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	name := list.Name
	if strings.TrimSpace(name) == "" {
		name = "(untitled)"
	}
	fmt.Fprintf(w, "%-12s  %s\n", list.ID, name)
}

// FormatComment prints a comment with its author and timestamp.
func FormatComment(w io.Writer, c service.Comment) {
	header := c.ID
	if c.User != "" {
		header += "  " + c.User
	}
	if c.Date != 0 {
		header += "  " + FormatMillis(c.Date)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "  %s\n", normalizeName(c.Text))
}

// FormatBulkSummary prints the outcome counts of a bulk operation.
func FormatBulkSummary(w io.Writer, verb string, succeeded, failed int) {
	if failed == 0 {
		fmt.Fprintf(w, "%s %d tasks\n", verb, succeeded)
		return
	}
	fmt.Fprintf(w, "%s %d tasks, %d failed\n", verb, succeeded, failed)
}

// FormatMillis renders a unix-millisecond timestamp in local time.
func FormatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// normalizeName flattens newlines and substitutes empty text for display.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
