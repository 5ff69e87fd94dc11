package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/output"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command.
type TasksCmd struct {
	list     listIdent
	statuses string
	subtasks bool
	page     int
	orderBy  string
	reverse  bool

	fs *flag.FlagSet
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"ls"} }
func (c *TasksCmd) Synopsis() string  { return "List tasks in a list" }
func (c *TasksCmd) Usage() string {
	return "clickup-tasks tasks [--statuses <s1,s2>] [--page <n>] <list-name>"
}
func (c *TasksCmd) NeedsAuth() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	c.list.register(fs)
	fs.StringVar(&c.statuses, "statuses", "", "")
	fs.BoolVar(&c.subtasks, "subtasks", false, "")
	fs.IntVar(&c.page, "page", 0, "")
	fs.StringVar(&c.orderBy, "order-by", "", "")
	fs.BoolVar(&c.reverse, "reverse", false, "")
	c.fs = fs
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	set := make(map[string]bool)
	c.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var filters service.TaskFilters
	if c.statuses != "" {
		for _, s := range strings.Split(c.statuses, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Statuses = append(filters.Statuses, s)
			}
		}
	}
	if set["subtasks"] {
		filters.Subtasks = &c.subtasks
	}
	if set["page"] {
		filters.Page = &c.page
	}
	if set["order-by"] {
		filters.OrderBy = &c.orderBy
	}
	if set["reverse"] {
		filters.Reverse = &c.reverse
	}

	list := c.list.identifier()
	if list.IsZero() && len(args) > 0 {
		list.ListName = strings.Join(args, " ")
	}

	tasks, err := h.GetTasks(ctx, list, filters)
	if err != nil {
		return fail(errOut, err)
	}

	for _, task := range tasks {
		output.FormatTaskLine(out, task)
	}
	return exitcode.Success
}
