package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command, a shortcut for setting a task's
// status to its closing status.
type DoneCmd struct {
	ident  taskIdent
	status string
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string {
	return "clickup-tasks done [--status <closing-status>] <task-id>"
}
func (c *DoneCmd) NeedsAuth() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.StringVar(&c.status, "status", "complete", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	_, err := h.UpdateTask(ctx, c.ident.identifier(args), ops.UpdateTaskParams{Status: &c.status})
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
