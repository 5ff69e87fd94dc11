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
	Register(&DuplicateCmd{})
}

// DuplicateCmd implements the duplicate command.
type DuplicateCmd struct {
	ident taskIdent
	to    string
	toID  string
}

func (c *DuplicateCmd) Name() string      { return "duplicate" }
func (c *DuplicateCmd) Aliases() []string { return []string{"dup"} }
func (c *DuplicateCmd) Synopsis() string  { return "Copy a task, optionally into another list" }
func (c *DuplicateCmd) Usage() string {
	return "clickup-tasks duplicate [--to <list-name>] <task-id>"
}
func (c *DuplicateCmd) NeedsAuth() bool { return true }

func (c *DuplicateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.StringVar(&c.to, "to", "", "")
	fs.StringVar(&c.toID, "to-id", "", "")
}

func (c *DuplicateCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	dest := ops.ListIdentifier{ListID: c.toID, ListName: c.to}
	task, err := h.DuplicateTask(ctx, c.ident.identifier(args), dest)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
