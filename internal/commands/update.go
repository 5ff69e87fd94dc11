package commands

import (
	"context"
	"flag"
	"io"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/output"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command. Only flags the user actually set
// are sent, so an explicit empty value clears a field while an unset flag
// leaves it unchanged.
type UpdateCmd struct {
	ident       taskIdent
	name        string
	description string
	markdown    string
	status      string
	priority    int
	due         string

	fs *flag.FlagSet
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return nil }
func (c *UpdateCmd) Synopsis() string  { return "Update fields on a task" }
func (c *UpdateCmd) Usage() string {
	return "clickup-tasks update [--status <s>] [--priority <1-4>] [--due <when>] <task-id>"
}
func (c *UpdateCmd) NeedsAuth() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.markdown, "markdown", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.IntVar(&c.priority, "priority", 0, "")
	fs.StringVar(&c.due, "due", "", "")
	c.fs = fs
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	set := make(map[string]bool)
	c.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var p ops.UpdateTaskParams
	if set["name"] {
		p.Name = &c.name
	}
	if set["description"] {
		p.Description = &c.description
	}
	if set["markdown"] {
		p.MarkdownDescription = &c.markdown
	}
	if set["status"] {
		p.Status = &c.status
	}
	if set["priority"] {
		p.Priority = &c.priority
	}
	if set["due"] {
		p.DueDate = &c.due
	}

	task, err := h.UpdateTask(ctx, c.ident.identifier(args), p)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
