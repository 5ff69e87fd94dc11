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
	Register(&GetCmd{})
}

// GetCmd implements the get command.
type GetCmd struct {
	ident taskIdent
}

func (c *GetCmd) Name() string      { return "get" }
func (c *GetCmd) Aliases() []string { return []string{"show"} }
func (c *GetCmd) Synopsis() string  { return "Print a task" }
func (c *GetCmd) Usage() string {
	return "clickup-tasks get <task-id> | --custom-id <id> | --list <list-name> <name...>"
}
func (c *GetCmd) NeedsAuth() bool { return true }

func (c *GetCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
}

func (c *GetCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	task, err := h.GetTask(ctx, c.ident.identifier(args))
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatTask(out, task)
	return exitcode.Success
}
