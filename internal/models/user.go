package models

import "time"

// User is the account record backing a principal. Rows are created lazily the
// first time an authenticated request touches the store and are never hard-deleted.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStreak tracks the consecutive-day login streak for one user.
// MaxStreak is the running maximum of CurrentStreak and never drops below it.
type UserStreak struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	MaxStreak     int    `json:"max_streak"`
	LastLoginDate string `json:"last_login_date"` // YYYY-MM-DD format
}

// StreakResult is the outcome of a streak touch. Updated is false when the
// user already logged a streak today and the call was a no-op.
type StreakResult struct {
	Streak  UserStreak `json:"streak"`
	Updated bool       `json:"-"`
}
