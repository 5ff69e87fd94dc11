package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/colinmollenhour/clickup-mcp-server/internal/bulk"
	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/output"
)

func init() {
	Register(&BulkCreateCmd{})
	Register(&BulkUpdateCmd{})
	Register(&BulkMoveCmd{})
	Register(&BulkDeleteCmd{})
}

// bulkFlags collects the execution options shared by all bulk commands.
type bulkFlags struct {
	concurrency int
	retry       int
	stopOnError bool
}

func (f *bulkFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&f.concurrency, "concurrency", bulk.DefaultConcurrency, "")
	fs.IntVar(&f.retry, "retry", 0, "")
	fs.BoolVar(&f.stopOnError, "stop-on-error", false, "")
}

func (f *bulkFlags) options() *bulk.Options {
	return &bulk.Options{
		Concurrency:     f.concurrency,
		RetryCount:      f.retry,
		ContinueOnError: !f.stopOnError,
	}
}

// bulkTaskItem is the JSON shape that identifies one task in a batch file.
type bulkTaskItem struct {
	TaskID       string `json:"taskId"`
	CustomTaskID string `json:"customTaskId"`
	TaskName     string `json:"taskName"`
	ListName     string `json:"listName"`
}

func (i bulkTaskItem) identifier() ops.TaskIdentifier {
	return ops.TaskIdentifier{
		TaskID:       i.TaskID,
		CustomTaskID: i.CustomTaskID,
		TaskName:     i.TaskName,
		ListName:     i.ListName,
	}
}

// readBatch decodes a JSON array from the file named by the single positional
// argument, with "-" meaning stdin.
func readBatch(args []string, v any) error {
	if len(args) != 1 {
		return fmt.Errorf("batch file required (or - for stdin)")
	}

	var r io.Reader
	if args[0] == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing batch: %w", err)
	}
	return nil
}

// writeFailures prints one line per failed item.
func writeFailures[T, R any](errOut io.Writer, result *bulk.BatchResult[T, R]) {
	for _, f := range result.Failed {
		fmt.Fprintf(errOut, "failed: %v\n", f.Err)
	}
}

// BulkCreateCmd implements the bulk-create command.
type BulkCreateCmd struct {
	list listIdent
	opts bulkFlags
}

func (c *BulkCreateCmd) Name() string      { return "bulk-create" }
func (c *BulkCreateCmd) Aliases() []string { return nil }
func (c *BulkCreateCmd) Synopsis() string  { return "Create tasks from a JSON batch file" }
func (c *BulkCreateCmd) Usage() string {
	return "clickup-tasks bulk-create --list <list-name> [--concurrency <n>] <file.json>"
}
func (c *BulkCreateCmd) NeedsAuth() bool { return true }

func (c *BulkCreateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.list.register(fs)
	c.opts.register(fs)
}

func (c *BulkCreateCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	var items []struct {
		Name                string  `json:"name"`
		Description         *string `json:"description"`
		MarkdownDescription *string `json:"markdownDescription"`
		Status              *string `json:"status"`
		Priority            *int    `json:"priority"`
		DueDate             *string `json:"dueDate"`
	}
	if err := readBatch(args, &items); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	batch := make([]ops.BulkCreateItem, len(items))
	for i, item := range items {
		batch[i] = ops.BulkCreateItem{
			Name:                item.Name,
			Description:         item.Description,
			MarkdownDescription: item.MarkdownDescription,
			Status:              item.Status,
			Priority:            item.Priority,
			DueDate:             item.DueDate,
		}
	}

	result, err := h.BulkCreateTasks(ctx, c.list.identifier(), batch, c.opts.options())
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatBulkSummary(out, "created", len(result.Successful), len(result.Failed))
	}
	writeFailures(errOut, result)
	if len(result.Failed) > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}

// BulkUpdateCmd implements the bulk-update command.
type BulkUpdateCmd struct {
	opts bulkFlags
}

func (c *BulkUpdateCmd) Name() string      { return "bulk-update" }
func (c *BulkUpdateCmd) Aliases() []string { return nil }
func (c *BulkUpdateCmd) Synopsis() string  { return "Update tasks from a JSON batch file" }
func (c *BulkUpdateCmd) Usage() string {
	return "clickup-tasks bulk-update [--concurrency <n>] <file.json>"
}
func (c *BulkUpdateCmd) NeedsAuth() bool { return true }

func (c *BulkUpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.opts.register(fs)
}

func (c *BulkUpdateCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	var items []struct {
		bulkTaskItem
		Name                *string `json:"name"`
		Description         *string `json:"description"`
		MarkdownDescription *string `json:"markdownDescription"`
		Status              *string `json:"status"`
		Priority            *int    `json:"priority"`
		DueDate             *string `json:"dueDate"`
	}
	if err := readBatch(args, &items); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	batch := make([]ops.BulkUpdateItem, len(items))
	for i, item := range items {
		batch[i] = ops.BulkUpdateItem{
			Task: item.identifier(),
			Fields: ops.UpdateTaskParams{
				Name:                item.Name,
				Description:         item.Description,
				MarkdownDescription: item.MarkdownDescription,
				Status:              item.Status,
				Priority:            item.Priority,
				DueDate:             item.DueDate,
			},
		}
	}

	result, err := h.BulkUpdateTasks(ctx, batch, c.opts.options())
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatBulkSummary(out, "updated", len(result.Successful), len(result.Failed))
	}
	writeFailures(errOut, result)
	if len(result.Failed) > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}

// BulkMoveCmd implements the bulk-move command.
type BulkMoveCmd struct {
	opts bulkFlags
	to   string
	toID string
}

func (c *BulkMoveCmd) Name() string      { return "bulk-move" }
func (c *BulkMoveCmd) Aliases() []string { return nil }
func (c *BulkMoveCmd) Synopsis() string  { return "Move tasks from a JSON batch file to one list" }
func (c *BulkMoveCmd) Usage() string {
	return "clickup-tasks bulk-move --to <list-name> <file.json>"
}
func (c *BulkMoveCmd) NeedsAuth() bool { return true }

func (c *BulkMoveCmd) RegisterFlags(fs *flag.FlagSet) {
	c.opts.register(fs)
	fs.StringVar(&c.to, "to", "", "")
	fs.StringVar(&c.toID, "to-id", "", "")
}

func (c *BulkMoveCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	var items []bulkTaskItem
	if err := readBatch(args, &items); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	idents := make([]ops.TaskIdentifier, len(items))
	for i, item := range items {
		idents[i] = item.identifier()
	}

	target := ops.ListIdentifier{ListID: c.toID, ListName: c.to}
	result, err := h.BulkMoveTasks(ctx, idents, target, c.opts.options())
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatBulkSummary(out, "moved", len(result.Successful), len(result.Failed))
	}
	writeFailures(errOut, result)
	if len(result.Failed) > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}

// BulkDeleteCmd implements the bulk-delete command.
type BulkDeleteCmd struct {
	opts bulkFlags
}

func (c *BulkDeleteCmd) Name() string      { return "bulk-delete" }
func (c *BulkDeleteCmd) Aliases() []string { return nil }
func (c *BulkDeleteCmd) Synopsis() string  { return "Delete tasks from a JSON batch file" }
func (c *BulkDeleteCmd) Usage() string {
	return "clickup-tasks bulk-delete [--concurrency <n>] <file.json>"
}
func (c *BulkDeleteCmd) NeedsAuth() bool { return true }

func (c *BulkDeleteCmd) RegisterFlags(fs *flag.FlagSet) {
	c.opts.register(fs)
}

func (c *BulkDeleteCmd) Run(ctx context.Context, cfg *config.Config, h *ops.Handler, args []string, out, errOut io.Writer) int {
	var items []bulkTaskItem
	if err := readBatch(args, &items); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	idents := make([]ops.TaskIdentifier, len(items))
	for i, item := range items {
		idents[i] = item.identifier()
	}

	deleted, err := h.BulkDeleteTasks(ctx, idents, c.opts.options())
	if err != nil {
		return fail(errOut, err)
	}

	failed := 0
	for _, ok := range deleted {
		if !ok {
			failed++
		}
	}
	if !cfg.Quiet {
		output.FormatBulkSummary(out, "deleted", len(deleted)-failed, failed)
	}
	if failed > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}
