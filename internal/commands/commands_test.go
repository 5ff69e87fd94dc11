package commands_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colinmollenhour/clickup-mcp-server/internal/bulk"
	"github.com/colinmollenhour/clickup-mcp-server/internal/commands"
	"github.com/colinmollenhour/clickup-mcp-server/internal/config"
	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
	"github.com/colinmollenhour/clickup-mcp-server/internal/testutil"
)

// runCommand parses args the way the dispatcher does and runs the command
// against a FakeClient.
func runCommand(t *testing.T, cmd commands.Command, client *testutil.FakeClient, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	var h *ops.Handler
	if cmd.NeedsAuth() {
		h = ops.NewHandler(client, bulk.DefaultOptions())
	}

	code = cmd.Run(context.Background(), cfg, h, fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "clickup-tasks 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

func TestListsCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Backlog")
	client.AddList("list-2", "Sprint 1")

	cmd := &commands.ListsCmd{}
	stdout, stderr, code := runCommand(t, cmd, client, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Backlog") || !strings.Contains(stdout, "Sprint 1") {
		t.Errorf("expected both lists in output, got %q", stdout)
	}
}

func TestCreateCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")

	cmd := &commands.CreateCmd{}
	stdout, stderr, code := runCommand(t, cmd, client,
		[]string{"--list", "Sprint 1", "--priority", "2", "Fix", "the", "bug"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "Fix the bug") {
		t.Errorf("expected created task in output, got %q", stdout)
	}

	tasks := client.TasksIn("list-1")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task in list, got %d", len(tasks))
	}
	if tasks[0].Name != "Fix the bug" {
		t.Errorf("expected joined name, got %q", tasks[0].Name)
	}
	if tasks[0].Priority != service.PriorityHigh {
		t.Errorf("expected high priority, got %v", tasks[0].Priority)
	}
}

func TestCreateCommand_MissingName(t *testing.T) {
	client := testutil.NewFakeClient()

	cmd := &commands.CreateCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--list", "Sprint 1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "task name required") {
		t.Errorf("expected name error, got %q", stderr)
	}
	if client.Calls.CreateTask != 0 {
		t.Error("expected no create call")
	}
}

func TestCreateCommand_InvalidPriority(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")

	cmd := &commands.CreateCmd{}
	_, stderr, code := runCommand(t, cmd, client,
		[]string{"--list", "Sprint 1", "--priority", "9", "Fix bug"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "priority") {
		t.Errorf("expected priority error, got %q", stderr)
	}
}

func TestGetCommand_ByID(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.GetCmd{}
	stdout, _, code := runCommand(t, cmd, client, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "id:       t1") {
		t.Errorf("expected task id in output, got %q", stdout)
	}
	if !strings.Contains(stdout, "Fix bug") {
		t.Errorf("expected task name in output, got %q", stdout)
	}
}

func TestGetCommand_ByNameInList(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.GetCmd{}
	stdout, _, code := runCommand(t, cmd, client, []string{"--list", "Sprint 1", "Fix", "bug"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "id:       t1") {
		t.Errorf("expected resolved task in output, got %q", stdout)
	}
}

func TestGetCommand_NotFound(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")

	cmd := &commands.GetCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--list", "Sprint 1", "Missing"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, `task "Missing" not found in list "Sprint 1"`) {
		t.Errorf("expected not-found message, got %q", stderr)
	}
}

func TestGetCommand_MissingIdentity(t *testing.T) {
	client := testutil.NewFakeClient()

	cmd := &commands.GetCmd{}
	_, stderr, code := runCommand(t, cmd, client, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}
}

func TestUpdateCommand_SparsePatch(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.UpdateCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--status", "in progress", "t1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if client.LastUpdateData.Status == nil || *client.LastUpdateData.Status != "in progress" {
		t.Error("expected status in patch")
	}
	if client.LastUpdateData.Name != nil {
		t.Error("expected name absent from patch")
	}
}

func TestUpdateCommand_ExplicitEmptyClearsField(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.UpdateCmd{}
	_, _, code := runCommand(t, cmd, client, []string{"--description=", "t1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if client.LastUpdateData.Description == nil || *client.LastUpdateData.Description != "" {
		t.Error("expected explicit empty description in patch")
	}
}

func TestUpdateCommand_NoFields(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.UpdateCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"t1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}
	if client.Calls.UpdateTask != 0 {
		t.Error("expected no update call")
	}
}

func TestDoneCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, client, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if got := client.TasksIn("list-1")[0].Status; got != "complete" {
		t.Errorf("expected complete status, got %q", got)
	}
}

func TestMoveCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddList("list-2", "Sprint 2")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.MoveCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--to", "Sprint 2", "t1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if len(client.TasksIn("list-1")) != 0 {
		t.Error("expected source list empty")
	}
	if len(client.TasksIn("list-2")) != 1 {
		t.Error("expected task in destination list")
	}
}

func TestMoveCommand_MissingDestination(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.MoveCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"t1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr == "" {
		t.Error("expected an error message")
	}
}

func TestDuplicateCommand_InPlace(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.DuplicateCmd{}
	_, _, code := runCommand(t, cmd, client, []string{"t1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if len(client.TasksIn("list-1")) != 2 {
		t.Error("expected two tasks after duplicate")
	}
}

func TestRmCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, client, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if len(client.TasksIn("list-1")) != 0 {
		t.Error("expected task deleted")
	}
}

func TestTasksCommand_StatusFilter(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Open task")
	client.AddTask("list-1", "t2", "Done task")
	st := "complete"
	if _, err := client.UpdateTask(context.Background(), "t2", service.UpdateTaskData{Status: &st}); err != nil {
		t.Fatal(err)
	}
	client.Calls.UpdateTask = 0

	cmd := &commands.TasksCmd{}
	stdout, stderr, code := runCommand(t, cmd, client, []string{"--statuses", "to do", "Sprint 1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "Open task") {
		t.Errorf("expected open task in output, got %q", stdout)
	}
}

func TestCommentCommand_RequiresText(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	cmd := &commands.CommentCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--id", "t1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "comment text is required") {
		t.Errorf("expected text error, got %q", stderr)
	}
}

func TestCommentAndCommentsCommands(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "Fix bug")

	comment := &commands.CommentCmd{}
	stdout, stderr, code := runCommand(t, comment, client, []string{"--id", "t1", "looks", "done"}, false)
	if code != exitcode.Success {
		t.Fatalf("comment failed: code %d, stderr %q", code, stderr)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("expected comment ID in output")
	}

	comments := &commands.CommentsCmd{}
	stdout, _, code = runCommand(t, comments, client, []string{"t1"}, false)
	if code != exitcode.Success {
		t.Fatalf("comments failed: code %d", code)
	}
	if !strings.Contains(stdout, "looks done") {
		t.Errorf("expected comment text in output, got %q", stdout)
	}
}

func TestBulkCreateCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")

	path := filepath.Join(t.TempDir(), "batch.json")
	batch := `[{"name": "Task A"}, {"name": "Task B", "priority": 2}]`
	if err := os.WriteFile(path, []byte(batch), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.BulkCreateCmd{}
	stdout, stderr, code := runCommand(t, cmd, client, []string{"--list", "Sprint 1", path}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "created 2 tasks") {
		t.Errorf("expected summary, got %q", stdout)
	}
	if len(client.TasksIn("list-1")) != 2 {
		t.Error("expected both tasks created")
	}
}

func TestBulkCreateCommand_MissingFile(t *testing.T) {
	client := testutil.NewFakeClient()

	cmd := &commands.BulkCreateCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{"--list", "Sprint 1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "batch file required") {
		t.Errorf("expected file error, got %q", stderr)
	}
}

func TestBulkDeleteCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "One")
	client.AddTask("list-1", "t2", "Two")

	path := filepath.Join(t.TempDir(), "batch.json")
	batch := `[{"taskId": "t1"}, {"taskId": "t2"}]`
	if err := os.WriteFile(path, []byte(batch), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.BulkDeleteCmd{}
	stdout, stderr, code := runCommand(t, cmd, client, []string{path}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "deleted 2 tasks") {
		t.Errorf("expected summary, got %q", stdout)
	}
	if len(client.TasksIn("list-1")) != 0 {
		t.Error("expected list empty")
	}
}

func TestBulkUpdateCommand(t *testing.T) {
	client := testutil.NewFakeClient()
	client.AddList("list-1", "Sprint 1")
	client.AddTask("list-1", "t1", "One")
	client.AddTask("list-1", "t2", "Two")

	path := filepath.Join(t.TempDir(), "batch.json")
	batch := `[{"taskId": "t1", "status": "done"}, {"taskName": "Two", "listName": "Sprint 1", "status": "done"}]`
	if err := os.WriteFile(path, []byte(batch), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.BulkUpdateCmd{}
	_, stderr, code := runCommand(t, cmd, client, []string{path}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	for _, task := range client.TasksIn("list-1") {
		if task.Status != "done" {
			t.Errorf("expected done status on %s, got %q", task.ID, task.Status)
		}
	}
}
