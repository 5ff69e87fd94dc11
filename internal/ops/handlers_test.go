package ops_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colinmollenhour/clickup-mcp-server/internal/bulk"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
	"github.com/colinmollenhour/clickup-mcp-server/internal/testutil"
)

func newHandler(client *testutil.FakeClient) *ops.Handler {
	return ops.NewHandler(client, bulk.DefaultOptions())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateTask(t *testing.T) {
	t.Run("Should resolve the list, coerce scalars and send only supplied fields", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		h := newHandler(client)

		task, err := h.CreateTask(context.Background(), ops.CreateTaskParams{
			List:     ops.ListIdentifier{ListName: "Sprint 1"},
			Name:     "Fix bug",
			Priority: intPtr(2),
			DueDate:  strPtr("tomorrow"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fix bug", task.Name)
		assert.Equal(t, "list-1", task.ListID)

		sent := client.LastCreateData
		assert.Equal(t, "Fix bug", sent.Name)
		require.NotNil(t, sent.Priority)
		assert.Equal(t, service.PriorityHigh, *sent.Priority)
		require.NotNil(t, sent.DueDate)
		assert.Greater(t, *sent.DueDate, time.Now().UnixMilli())
		assert.Nil(t, sent.Description)
		assert.Nil(t, sent.MarkdownDescription)
		assert.Nil(t, sent.Status)
	})

	t.Run("Should reject a missing name before any network call", func(t *testing.T) {
		client := testutil.NewFakeClient()
		h := newHandler(client)

		_, err := h.CreateTask(context.Background(), ops.CreateTaskParams{
			List: ops.ListIdentifier{ListName: "Sprint 1"},
		})
		var verr *ops.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
		assert.Zero(t, client.Calls.ListLists)
		assert.Zero(t, client.Calls.CreateTask)
	})

	t.Run("Should reject an invalid priority before resolving the list", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		h := newHandler(client)

		_, err := h.CreateTask(context.Background(), ops.CreateTaskParams{
			List:     ops.ListIdentifier{ListName: "Sprint 1"},
			Name:     "Fix bug",
			Priority: intPtr(7),
		})
		var verr *ops.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Zero(t, client.Calls.ListLists)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("Should apply a sparse patch to a name-identified task", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		task, err := h.UpdateTask(context.Background(),
			ops.TaskIdentifier{TaskName: "Fix bug", ListName: "Sprint 1"},
			ops.UpdateTaskParams{Status: strPtr("in progress")})
		require.NoError(t, err)
		assert.Equal(t, "in progress", task.Status)
		assert.Nil(t, client.LastUpdateData.Name)
	})

	t.Run("Should reject an empty update", func(t *testing.T) {
		client := testutil.NewFakeClient()
		h := newHandler(client)

		_, err := h.UpdateTask(context.Background(), ops.TaskIdentifier{TaskID: "t1"}, ops.UpdateTaskParams{})
		var verr *ops.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Zero(t, client.Calls.UpdateTask)
	})
}

func TestMoveTask(t *testing.T) {
	t.Run("Should move a task to the destination list", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddList("list-2", "Sprint 2")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		task, err := h.MoveTask(context.Background(),
			ops.TaskIdentifier{TaskID: "t1"},
			ops.ListIdentifier{ListName: "Sprint 2"})
		require.NoError(t, err)
		assert.Equal(t, "list-2", task.ListID)
		assert.Empty(t, client.TasksIn("list-1"))
	})
}

func TestDuplicateTask(t *testing.T) {
	t.Run("Should duplicate in place when no destination is supplied", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		task, err := h.DuplicateTask(context.Background(), ops.TaskIdentifier{TaskID: "t1"}, ops.ListIdentifier{})
		require.NoError(t, err)
		assert.Equal(t, "list-1", task.ListID)
		assert.Len(t, client.TasksIn("list-1"), 2)
	})

	t.Run("Should duplicate into the destination list when one is supplied", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddList("list-2", "Sprint 2")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		task, err := h.DuplicateTask(context.Background(),
			ops.TaskIdentifier{TaskID: "t1"},
			ops.ListIdentifier{ListName: "Sprint 2"})
		require.NoError(t, err)
		assert.Equal(t, "list-2", task.ListID)
		assert.Len(t, client.TasksIn("list-1"), 1)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("Should return a success marker instead of the deleted entity", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		ok, err := h.DeleteTask(context.Background(), ops.TaskIdentifier{TaskID: "t1"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, client.TasksIn("list-1"))
	})

	t.Run("Should report false on failure", func(t *testing.T) {
		client := testutil.NewFakeClient()
		h := newHandler(client)

		ok, err := h.DeleteTask(context.Background(), ops.TaskIdentifier{TaskID: "missing"})
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestGetTasks(t *testing.T) {
	t.Run("Should pass filters through to the client", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		client.AddTask("list-1", "t2", "Write docs")
		h := newHandler(client)

		tasks, err := h.GetTasks(context.Background(),
			ops.ListIdentifier{ListName: "Sprint 1"},
			service.TaskFilters{Statuses: []string{"to do"}})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}

func TestCreateTaskComment(t *testing.T) {
	t.Run("Should require comment text", func(t *testing.T) {
		client := testutil.NewFakeClient()
		h := newHandler(client)

		_, err := h.CreateTaskComment(context.Background(), ops.TaskIdentifier{TaskID: "t1"}, ops.CreateCommentParams{})
		var verr *ops.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "commentText", verr.Field)
	})

	t.Run("Should enrich a lookup failure with the human-supplied names", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		client.CreateCommentErr = service.ErrNotFound
		h := newHandler(client)

		_, err := h.CreateTaskComment(context.Background(),
			ops.TaskIdentifier{TaskName: "Fix bug", ListName: "Sprint 1"},
			ops.CreateCommentParams{Text: "looks done"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `task "Fix bug" not found in list "Sprint 1"`)
	})

	t.Run("Should rethrow unrelated errors unchanged", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		upstream := errors.New("rate limit exceeded")
		client.CreateCommentErr = upstream
		h := newHandler(client)

		_, err := h.CreateTaskComment(context.Background(),
			ops.TaskIdentifier{TaskID: "t1"},
			ops.CreateCommentParams{Text: "hi"})
		assert.ErrorIs(t, err, upstream)
	})

	t.Run("Should create a comment on the resolved task", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.AddList("list-1", "Sprint 1")
		client.AddTask("list-1", "t1", "Fix bug")
		h := newHandler(client)

		c, err := h.CreateTaskComment(context.Background(),
			ops.TaskIdentifier{TaskName: "Fix bug", ListName: "Sprint 1"},
			ops.CreateCommentParams{Text: "looks done", NotifyAll: true})
		require.NoError(t, err)
		assert.Equal(t, "looks done", c.Text)
	})
}
