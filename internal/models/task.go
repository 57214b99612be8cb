package models

import "time"

// WorkspaceTask is a task inside a collaborative workspace. Status and
// priority are opaque caller-supplied strings; no transition graph is enforced.
type WorkspaceTask struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedBy   string     `json:"created_by"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *string    `json:"due_date"` // YYYY-MM-DD format
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskUpdate carries the recognized update fields for a workspace task.
// Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// IsEmpty reports whether no recognized field is present.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.AssignedTo == nil && u.DueDate == nil
}

// TaskFilters narrows workspace task listings. Zero-value fields are ignored.
type TaskFilters struct {
	Status     string
	Priority   string
	AssignedTo string
	CreatedBy  string
}

// TaskComment is a user comment attached to a workspace task.
type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskAttachment is a file reference attached to a workspace task. The file
// itself lives outside the store; only the pointer is recorded.
type TaskAttachment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskHistoryEntry is an append-only audit row recording one field change on
// a task update. Unchanged fields and the updated_at bookkeeping column never
// produce entries.
type TaskHistoryEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	FieldName string    `json:"field_name"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskThread is a task with its ordered discussion: comments ascending by
// creation time, attachments descending.
type TaskThread struct {
	Task        WorkspaceTask    `json:"task"`
	Comments    []TaskComment    `json:"comments"`
	Attachments []TaskAttachment `json:"attachments"`
}
