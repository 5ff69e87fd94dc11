package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/output"
)

func init() {
	Register(&CreateCmd{})
}

// CreateCmd implements the create command.
type CreateCmd struct {
	list        listIdent
	description string
	markdown    string
	status      string
	priority    int
	due         string
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return []string{"add"} }
func (c *CreateCmd) Synopsis() string  { return "Create a task" }
func (c *CreateCmd) Usage() string {
	return "clickup-tasks create --list <list-name> [--priority <1-4>] [--due <when>] <name...>"
}
func (c *CreateCmd) NeedsAuth() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.list.register(fs)
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.markdown, "markdown", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.IntVar(&c.priority, "priority", 0, "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task name required")
		return exitcode.UserError
	}

	p := ops.CreateTaskParams{
		List: c.list.identifier(),
		Name: strings.Join(args, " "),
	}
	if c.description != "" {
		p.Description = &c.description
	}
	if c.markdown != "" {
		p.MarkdownDescription = &c.markdown
	}
	if c.status != "" {
		p.Status = &c.status
	}
	if c.priority != 0 {
		p.Priority = &c.priority
	}
	if c.due != "" {
		p.DueDate = &c.due
	}

	task, err := h.CreateTask(ctx, p)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
