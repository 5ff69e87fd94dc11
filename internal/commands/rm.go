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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	ident taskIdent
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string {
	return "clickup-tasks rm <task-id> | --list <list-name> <name...>"
}
func (c *RmCmd) NeedsAuth() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	if _, err := h.DeleteTask(ctx, c.ident.identifier(args)); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
