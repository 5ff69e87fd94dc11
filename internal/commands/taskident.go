package commands

import (
	"flag"
	"strings"

	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
)

// taskIdent collects the flags that identify a single task.
type taskIdent struct {
	taskID   string
	customID string
	taskName string
	listName string
}

func (f *taskIdent) register(fs *flag.FlagSet) {
	fs.StringVar(&f.taskID, "id", "", "")
	fs.StringVar(&f.customID, "custom-id", "", "")
	fs.StringVar(&f.taskName, "task", "", "")
	fs.StringVar(&f.listName, "list", "", "")
}

// identifier builds a task identifier from the flags and the positional
// arguments. Positional text is treated as a task name when a list is given,
// otherwise as an ID; custom-ID-shaped IDs are detected downstream.
func (f *taskIdent) identifier(args []string) ops.TaskIdentifier {
	id := ops.TaskIdentifier{
		TaskID:       f.taskID,
		CustomTaskID: f.customID,
		TaskName:     f.taskName,
		ListName:     f.listName,
	}
	if len(args) == 0 || id.TaskID != "" || id.CustomTaskID != "" || id.TaskName != "" {
		return id
	}
	text := strings.Join(args, " ")
	if f.listName == "" {
		id.TaskID = text
	} else {
		id.TaskName = text
	}
	return id
}

// listIdent collects the flags that identify a list.
type listIdent struct {
	listID   string
	listName string
}

func (f *listIdent) register(fs *flag.FlagSet) {
	fs.StringVar(&f.listID, "list-id", "", "")
	fs.StringVar(&f.listName, "list", "", "")
	fs.StringVar(&f.listName, "l", "", "")
}

func (f *listIdent) identifier() ops.ListIdentifier {
	return ops.ListIdentifier{ListID: f.listID, ListName: f.listName}
}
