package models

import "time"

// Todo is a personal to-do item owned by exactly one user.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoUpdate carries the recognized update fields for a todo. Nil fields are
// left unchanged; at least one must be set.
type TodoUpdate struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether no recognized field is present.
func (u TodoUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil
}
