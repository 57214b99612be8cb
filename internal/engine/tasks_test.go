package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cotask/internal/models"
)

// taskFixture is a workspace with an owner (user-1), an admin (user-2), and
// two plain members (user-3, user-4).
func taskFixture(t *testing.T, eng *Engine) models.WorkspaceWithRole {
	t.Helper()

	addUser(t, eng, "user-2", "two@example.com", "User Two")
	addUser(t, eng, "user-3", "three@example.com", "User Three")
	addUser(t, eng, "user-4", "four@example.com", "User Four")

	ws := newWorkspace(t, eng, "user-1")
	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "admin")
	require.NoError(t, err)
	_, err = eng.InviteMember("user-1", ws.ID, "three@example.com", "member")
	require.NoError(t, err)
	_, err = eng.InviteMember("user-1", ws.ID, "four@example.com", "member")
	require.NoError(t, err)
	return ws
}

func TestCreateTaskDefaults(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-3", ws.ID, NewTask{Title: " Ship it "})
	require.NoError(t, err)
	require.Equal(t, "Ship it", task.Title)
	require.Equal(t, "todo", task.Status)
	require.Equal(t, "medium", task.Priority)
	require.Equal(t, "user-3", task.CreatedBy)
	require.Nil(t, task.AssignedTo)

	_, err = eng.CreateTask("user-3", ws.ID, NewTask{Title: "  "})
	require.Equal(t, KindValidation, KindOf(err))
}

func TestCreateTaskRequiresMembership(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)
	addUser(t, eng, "user-9", "nine@example.com", "Outsider")

	_, err := eng.CreateTask("user-9", ws.ID, NewTask{Title: "Sneak in"})
	require.Equal(t, KindForbidden, KindOf(err))
}

func TestListTasksFilters(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	_, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "A", Status: "done"})
	require.NoError(t, err)
	_, err = eng.CreateTask("user-3", ws.ID, NewTask{Title: "B", Priority: "high", AssignedTo: strPtr("user-4")})
	require.NoError(t, err)

	all, err := eng.ListTasks("user-2", ws.ID, models.TaskFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	done, err := eng.ListTasks("user-2", ws.ID, models.TaskFilters{Status: "done"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.Equal(t, "A", done[0].Title)

	assigned, err := eng.ListTasks("user-2", ws.ID, models.TaskFilters{AssignedTo: "user-4"})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.Equal(t, "B", assigned[0].Title)

	created, err := eng.ListTasks("user-2", ws.ID, models.TaskFilters{CreatedBy: "user-3", Priority: "high"})
	require.NoError(t, err)
	require.Len(t, created, 1)
}

func TestUpdateTaskMemberPermissions(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Review", AssignedTo: strPtr("user-3")})
	require.NoError(t, err)

	// user-4 neither created nor is assigned: forbidden.
	_, err = eng.UpdateTask("user-4", task.ID, models.TaskUpdate{Status: strPtr("done")})
	require.Equal(t, KindForbidden, KindOf(err))

	// The assignee may update.
	updated, err := eng.UpdateTask("user-3", task.ID, models.TaskUpdate{Status: strPtr("done")})
	require.NoError(t, err)
	require.Equal(t, "done", updated.Status)

	// Owner and admin may update any task.
	_, err = eng.UpdateTask("user-2", task.ID, models.TaskUpdate{Priority: strPtr("high")})
	require.NoError(t, err)
	_, err = eng.UpdateTask("user-1", task.ID, models.TaskUpdate{Title: strPtr("Review PR")})
	require.NoError(t, err)
}

func TestUpdateTaskHistory(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Review"})
	require.NoError(t, err)

	_, err = eng.UpdateTask("user-1", task.ID, models.TaskUpdate{
		Status:   strPtr("in_progress"),
		Priority: strPtr("medium"), // unchanged: no history entry
		Title:    strPtr("Review"), // unchanged
	})
	require.NoError(t, err)

	entries, err := eng.GetTaskHistory("user-1", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "status", entries[0].FieldName)
	require.Equal(t, "todo", entries[0].OldValue)
	require.Equal(t, "in_progress", entries[0].NewValue)
	require.Equal(t, "user-1", entries[0].UserID)

	_, err = eng.UpdateTask("user-1", task.ID, models.TaskUpdate{
		Status:     strPtr("done"),
		AssignedTo: strPtr("user-3"),
	})
	require.NoError(t, err)

	entries, err = eng.GetTaskHistory("user-1", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestUpdateTaskNoFields(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Review"})
	require.NoError(t, err)

	_, err = eng.UpdateTask("user-1", task.ID, models.TaskUpdate{})
	require.Equal(t, KindValidation, KindOf(err))
}

func TestDeleteTaskPermissions(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Owned by owner"})
	require.NoError(t, err)

	// A member who did not create the task cannot delete it.
	err = eng.DeleteTask("user-3", task.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	// The owner can.
	require.NoError(t, eng.DeleteTask("user-1", task.ID))

	// A member can delete their own task.
	own, err := eng.CreateTask("user-3", ws.ID, NewTask{Title: "Mine"})
	require.NoError(t, err)
	require.NoError(t, eng.DeleteTask("user-3", own.ID))

	// An admin can delete anyone's task.
	other, err := eng.CreateTask("user-4", ws.ID, NewTask{Title: "Theirs"})
	require.NoError(t, err)
	require.NoError(t, eng.DeleteTask("user-2", other.ID))

	err = eng.DeleteTask("user-1", other.ID)
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestTaskThreadAndComments(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)
	addUser(t, eng, "user-9", "nine@example.com", "Outsider")

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Discuss"})
	require.NoError(t, err)

	_, err = eng.AddComment("user-3", task.ID, "first!")
	require.NoError(t, err)
	_, err = eng.AddComment("user-1", task.ID, "second")
	require.NoError(t, err)

	_, err = eng.AddComment("user-9", task.ID, "outsider")
	require.Equal(t, KindForbidden, KindOf(err))

	_, err = eng.AddComment("user-3", task.ID, "   ")
	require.Equal(t, KindValidation, KindOf(err))

	thread, err := eng.GetTaskThread("user-4", task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, thread.Task.ID)
	require.Len(t, thread.Comments, 2)
	require.Equal(t, "first!", thread.Comments[0].Content)
	require.Empty(t, thread.Attachments)

	_, err = eng.GetTaskThread("user-9", task.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	_, err = eng.GetTaskThread("user-1", "missing")
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	eng, _ := newTestEngine(t)
	ws := taskFixture(t, eng)

	task, err := eng.CreateTask("user-1", ws.ID, NewTask{Title: "Ephemeral"})
	require.NoError(t, err)
	_, err = eng.AddComment("user-1", task.ID, "gone soon")
	require.NoError(t, err)

	require.NoError(t, eng.DeleteTask("user-1", task.ID))

	_, err = eng.GetTaskThread("user-1", task.ID)
	require.Equal(t, KindNotFound, KindOf(err))
}
