package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/logger"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/validation"
)

// NewTask carries the caller-supplied fields for task creation. Zero-value
// Status and Priority fall back to the workspace defaults.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
}

// CreateTask creates a task in a workspace the user belongs to.
func (e *Engine) CreateTask(userID, workspaceID string, in NewTask) (models.WorkspaceTask, error) {
	if userID == "" {
		return models.WorkspaceTask{}, errUnauthorized()
	}

	title, err := validation.TrimmedNonEmpty("title", in.Title)
	if err != nil {
		return models.WorkspaceTask{}, errValidationf("%v", err)
	}

	if _, err := e.requireMember(workspaceID, userID); err != nil {
		return models.WorkspaceTask{}, err
	}

	status := in.Status
	if status == "" {
		status = constants.DefaultTaskStatus
	}
	priority := in.Priority
	if priority == "" {
		priority = constants.DefaultTaskPriority
	}

	now := e.now().UTC()
	task := models.WorkspaceTask{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		CreatedBy:   userID,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.store.AddWorkspaceTask(task); err != nil {
		return models.WorkspaceTask{}, errStore("create task", err)
	}
	return task, nil
}

// ListTasks returns a workspace's tasks, optionally narrowed by filters.
func (e *Engine) ListTasks(userID, workspaceID string, filters models.TaskFilters) ([]models.WorkspaceTask, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	if _, err := e.requireMember(workspaceID, userID); err != nil {
		return nil, err
	}

	tasks, err := e.store.GetWorkspaceTasks(workspaceID, filters)
	if err != nil {
		return nil, errStore("fetch tasks", err)
	}
	return tasks, nil
}

// GetTaskThread returns a task with its comments and attachments. Tasks are
// addressed by bare id; membership is checked against the task's workspace.
func (e *Engine) GetTaskThread(userID, taskID string) (models.TaskThread, error) {
	if userID == "" {
		return models.TaskThread{}, errUnauthorized()
	}

	task, _, err := e.memberTask(userID, taskID)
	if err != nil {
		return models.TaskThread{}, err
	}

	comments, err := e.store.GetTaskComments(taskID)
	if err != nil {
		return models.TaskThread{}, errStore("fetch comments", err)
	}
	attachments, err := e.store.GetTaskAttachments(taskID)
	if err != nil {
		return models.TaskThread{}, errStore("fetch attachments", err)
	}

	return models.TaskThread{Task: task, Comments: comments, Attachments: attachments}, nil
}

// UpdateTask applies an update to a workspace task. Owners and admins may
// update any task; plain members only the tasks they created or are assigned
// to. Every changed field is recorded as a history entry.
func (e *Engine) UpdateTask(userID, taskID string, update models.TaskUpdate) (models.WorkspaceTask, error) {
	if userID == "" {
		return models.WorkspaceTask{}, errUnauthorized()
	}
	if update.IsEmpty() {
		return models.WorkspaceTask{}, errValidationf("no valid update fields provided")
	}

	task, actor, err := e.memberTask(userID, taskID)
	if err != nil {
		return models.WorkspaceTask{}, err
	}

	if actor.Role == models.RoleMember && !taskBelongsTo(task, userID) {
		return models.WorkspaceTask{}, errForbidden("members can only update tasks they created or are assigned to")
	}

	updated := task
	var history []models.TaskHistoryEntry
	record := func(field, oldVal, newVal string) {
		if oldVal == newVal {
			return
		}
		history = append(history, models.TaskHistoryEntry{
			ID:        uuid.NewString(),
			TaskID:    taskID,
			UserID:    userID,
			FieldName: field,
			OldValue:  oldVal,
			NewValue:  newVal,
			CreatedAt: e.now().UTC(),
		})
	}

	if update.Title != nil {
		title, err := validation.TrimmedNonEmpty("title", *update.Title)
		if err != nil {
			return models.WorkspaceTask{}, errValidationf("%v", err)
		}
		record("title", task.Title, title)
		updated.Title = title
	}
	if update.Description != nil {
		record("description", derefOr(task.Description, ""), *update.Description)
		updated.Description = update.Description
	}
	if update.Status != nil {
		record("status", task.Status, *update.Status)
		updated.Status = *update.Status
	}
	if update.Priority != nil {
		record("priority", task.Priority, *update.Priority)
		updated.Priority = *update.Priority
	}
	if update.AssignedTo != nil {
		record("assigned_to", derefOr(task.AssignedTo, ""), *update.AssignedTo)
		updated.AssignedTo = update.AssignedTo
	}
	if update.DueDate != nil {
		record("due_date", derefOr(task.DueDate, ""), *update.DueDate)
		updated.DueDate = update.DueDate
	}
	updated.UpdatedAt = e.now().UTC()

	if err := e.store.UpdateWorkspaceTask(updated); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WorkspaceTask{}, errNotFound("task")
		}
		return models.WorkspaceTask{}, errStore("update task", err)
	}

	// History is best-effort: a failed audit write never fails the update.
	for _, entry := range history {
		if err := e.store.AddTaskHistory(entry); err != nil {
			logger.Warn("Task history write failed", "task", taskID, "field", entry.FieldName, "error", err)
		}
	}

	return updated, nil
}

// DeleteTask removes a task. Owners, admins, and the task's creator may
// delete it; the store cascades comments and attachments.
func (e *Engine) DeleteTask(userID, taskID string) error {
	if userID == "" {
		return errUnauthorized()
	}

	task, actor, err := e.memberTask(userID, taskID)
	if err != nil {
		return err
	}

	if actor.Role == models.RoleMember && task.CreatedBy != userID {
		return errForbidden("members can only delete tasks they created")
	}

	if err := e.store.DeleteWorkspaceTask(taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound("task")
		}
		return errStore("delete task", err)
	}
	return nil
}

// AddComment appends a comment to a task. Any workspace member may comment.
func (e *Engine) AddComment(userID, taskID, content string) (models.TaskComment, error) {
	if userID == "" {
		return models.TaskComment{}, errUnauthorized()
	}

	trimmed, err := validation.TrimmedNonEmpty("content", content)
	if err != nil {
		return models.TaskComment{}, errValidationf("%v", err)
	}

	if _, _, err := e.memberTask(userID, taskID); err != nil {
		return models.TaskComment{}, err
	}

	comment := models.TaskComment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    userID,
		Content:   trimmed,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.AddTaskComment(comment); err != nil {
		return models.TaskComment{}, errStore("add comment", err)
	}
	return comment, nil
}

// GetTaskHistory returns a task's audit trail in chronological order.
func (e *Engine) GetTaskHistory(userID, taskID string) ([]models.TaskHistoryEntry, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	if _, _, err := e.memberTask(userID, taskID); err != nil {
		return nil, err
	}

	entries, err := e.store.GetTaskHistory(taskID)
	if err != nil {
		return nil, errStore("fetch task history", err)
	}
	return entries, nil
}

// memberTask loads a task and the caller's membership in its workspace. A
// missing task is a not-found; an existing task in a workspace the caller
// does not belong to is forbidden.
func (e *Engine) memberTask(userID, taskID string) (models.WorkspaceTask, models.WorkspaceMember, error) {
	task, err := e.store.GetWorkspaceTask(taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WorkspaceTask{}, models.WorkspaceMember{}, errNotFound("task")
		}
		return models.WorkspaceTask{}, models.WorkspaceMember{}, errStore("fetch task", err)
	}

	actor, err := e.requireMember(task.WorkspaceID, userID)
	if err != nil {
		return models.WorkspaceTask{}, models.WorkspaceMember{}, err
	}
	return task, actor, nil
}

func taskBelongsTo(task models.WorkspaceTask, userID string) bool {
	if task.CreatedBy == userID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == userID
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
