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
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
type MoveCmd struct {
	ident taskIdent
	to    string
	toID  string
}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to another list" }
func (c *MoveCmd) Usage() string {
	return "clickup-tasks move --to <list-name> <task-id>"
}
func (c *MoveCmd) NeedsAuth() bool { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.StringVar(&c.to, "to", "", "")
	fs.StringVar(&c.toID, "to-id", "", "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	dest := ops.ListIdentifier{ListID: c.toID, ListName: c.to}
	task, err := h.MoveTask(ctx, c.ident.identifier(args), dest)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
