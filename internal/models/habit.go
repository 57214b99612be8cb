package models

import "time"

// Habit is a recurring daily practice with a consecutive-day streak counter.
// CompletedAt, when non-nil, is the most recent completion instant; whether
// that counts as "today" is decided by UTC calendar-day comparison.
type Habit struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Streak      int        `json:"streak"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
