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
)

func init() {
	Register(&CommentCmd{})
}

// CommentCmd implements the comment command. The task is identified by flags
// so the positional arguments can carry the comment text.
type CommentCmd struct {
	ident     taskIdent
	notifyAll bool
	assignee  int

	fs *flag.FlagSet
}

func (c *CommentCmd) Name() string      { return "comment" }
func (c *CommentCmd) Aliases() []string { return nil }
func (c *CommentCmd) Synopsis() string  { return "Add a comment to a task" }
func (c *CommentCmd) Usage() string {
	return "clickup-tasks comment --id <task-id> [--notify-all] <text...>"
}
func (c *CommentCmd) NeedsAuth() bool { return true }

func (c *CommentCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.BoolVar(&c.notifyAll, "notify-all", false, "")
	fs.IntVar(&c.assignee, "assignee", 0, "")
	c.fs = fs
}

func (c *CommentCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	p := ops.CreateCommentParams{
		Text:      strings.Join(args, " "),
		NotifyAll: c.notifyAll,
	}
	c.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "assignee" {
			p.Assignee = &c.assignee
		}
	})

	comment, err := h.CreateTaskComment(ctx, c.ident.identifier(nil), p)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, comment.ID)
	}
	return exitcode.Success
}
