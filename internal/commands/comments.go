package commands

import (
	"context"
	"flag"
	"io"

	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/output"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

func init() {
	Register(&CommentsCmd{})
}

// CommentsCmd implements the comments command.
type CommentsCmd struct {
	ident   taskIdent
	start   int64
	startID string

	fs *flag.FlagSet
}

func (c *CommentsCmd) Name() string      { return "comments" }
func (c *CommentsCmd) Aliases() []string { return nil }
func (c *CommentsCmd) Synopsis() string  { return "Print comments on a task" }
func (c *CommentsCmd) Usage() string {
	return "clickup-tasks comments [--start <millis> --start-id <comment-id>] <task-id>"
}
func (c *CommentsCmd) NeedsAuth() bool { return true }

func (c *CommentsCmd) RegisterFlags(fs *flag.FlagSet) {
	c.ident.register(fs)
	fs.Int64Var(&c.start, "start", 0, "")
	fs.StringVar(&c.startID, "start-id", "", "")
	c.fs = fs
}

func (c *CommentsCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	set := make(map[string]bool)
	c.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var q service.CommentQuery
	if set["start"] {
		q.Start = &c.start
	}
	if set["start-id"] {
		q.StartID = &c.startID
	}

	comments, err := h.GetTaskComments(ctx, c.ident.identifier(args), q)
	if err != nil {
		return fail(errOut, err)
	}

	for _, comment := range comments {
		output.FormatComment(out, comment)
	}
	return exitcode.Success
}
