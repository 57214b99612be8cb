package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) AddWorkspaceTask(task models.WorkspaceTask) error {
	_, err := s.db.Exec(`
		INSERT INTO workspace_tasks
			(id, workspace_id, title, description, status, priority, created_by, assigned_to, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.WorkspaceID, task.Title, nullString(task.Description),
		task.Status, task.Priority, task.CreatedBy, nullString(task.AssignedTo),
		nullString(task.DueDate),
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetWorkspaceTask(id string) (models.WorkspaceTask, error) {
	row := s.db.QueryRow(`
		SELECT id, workspace_id, title, description, status, priority, created_by, assigned_to, due_date, created_at, updated_at
		FROM workspace_tasks WHERE id = ?`, id)

	t, err := scanWorkspaceTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WorkspaceTask{}, storage.ErrNotFound
		}
		return models.WorkspaceTask{}, err
	}
	return t, nil
}

func (s *Store) GetWorkspaceTasks(workspaceID string, filters models.TaskFilters) ([]models.WorkspaceTask, error) {
	query := `
		SELECT id, workspace_id, title, description, status, priority, created_by, assigned_to, due_date, created_at, updated_at
		FROM workspace_tasks WHERE workspace_id = ?`
	args := []any{workspaceID}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}
	if filters.AssignedTo != "" {
		query += " AND assigned_to = ?"
		args = append(args, filters.AssignedTo)
	}
	if filters.CreatedBy != "" {
		query += " AND created_by = ?"
		args = append(args, filters.CreatedBy)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.WorkspaceTask
	for rows.Next() {
		t, err := scanWorkspaceTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Store) UpdateWorkspaceTask(task models.WorkspaceTask) error {
	result, err := s.db.Exec(`
		UPDATE workspace_tasks
		SET title = ?, description = ?, status = ?, priority = ?, assigned_to = ?, due_date = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, nullString(task.Description), task.Status, task.Priority,
		nullString(task.AssignedTo), nullString(task.DueDate),
		task.UpdatedAt.Format(time.RFC3339), task.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteWorkspaceTask(id string) error {
	// Comments, attachments and history cascade at the schema level.
	result, err := s.db.Exec(`DELETE FROM workspace_tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddTaskComment(comment models.TaskComment) error {
	_, err := s.db.Exec(`
		INSERT INTO task_comments (id, task_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.TaskID, comment.UserID, comment.Content,
		comment.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetTaskComments(taskID string) ([]models.TaskComment, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, user_id, content, created_at
		FROM task_comments WHERE task_id = ?
		ORDER BY created_at`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.TaskComment
	for rows.Next() {
		var c models.TaskComment
		var createdAt string

		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &createdAt); err != nil {
			return nil, err
		}

		c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for comment %s: %w", c.ID, err)
		}

		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (s *Store) GetTaskAttachments(taskID string) ([]models.TaskAttachment, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, user_id, file_name, file_path, created_at
		FROM task_attachments WHERE task_id = ?
		ORDER BY created_at DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.TaskAttachment
	for rows.Next() {
		var a models.TaskAttachment
		var createdAt string

		if err := rows.Scan(&a.ID, &a.TaskID, &a.UserID, &a.FileName, &a.FilePath, &createdAt); err != nil {
			return nil, err
		}

		a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for attachment %s: %w", a.ID, err)
		}

		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

func (s *Store) AddTaskHistory(entry models.TaskHistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO task_history (id, task_id, user_id, field_name, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.UserID, entry.FieldName, entry.OldValue,
		entry.NewValue, entry.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetTaskHistory(taskID string) ([]models.TaskHistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, user_id, field_name, old_value, new_value, created_at
		FROM task_history WHERE task_id = ?
		ORDER BY created_at`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TaskHistoryEntry
	for rows.Next() {
		var e models.TaskHistoryEntry
		var createdAt string

		if err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &e.FieldName, &e.OldValue, &e.NewValue, &createdAt); err != nil {
			return nil, err
		}

		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for history %s: %w", e.ID, err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanWorkspaceTask(scan func(dest ...any) error) (models.WorkspaceTask, error) {
	var t models.WorkspaceTask
	var description, assignedTo, dueDate sql.NullString
	var createdAt, updatedAt string

	err := scan(&t.ID, &t.WorkspaceID, &t.Title, &description, &t.Status, &t.Priority,
		&t.CreatedBy, &assignedTo, &dueDate, &createdAt, &updatedAt)
	if err != nil {
		return models.WorkspaceTask{}, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	if assignedTo.Valid {
		t.AssignedTo = &assignedTo.String
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.WorkspaceTask{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.WorkspaceTask{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return t, nil
}
