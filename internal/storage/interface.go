package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/cotask/internal/models"
)

// ErrNotFound is returned by reads and keyed writes when no matching row
// exists. For owner-scoped entities the same error covers "exists but owned
// by someone else", so callers cannot distinguish the two.
var ErrNotFound = errors.New("record not found")

// Provider is the query interface the business engines run against. Two
// implementations exist: sqlite (modernc.org/sqlite) and postgres (lib/pq).
//
// Operations that back a concurrency-sensitive rule are conditional writes:
// they report via their bool result whether the row actually transitioned, so
// callers never read-modify-write around them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Users
	EnsureUser(user models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UpdateUserProfile(id, name, avatar string) (models.User, error)
	// AddCoins atomically increments the user's coin balance at the store.
	AddCoins(userID string, amount int) error

	// Todos (owner-scoped: id lookups always pair with userID)
	AddTodo(todo models.Todo) error
	GetTodo(id, userID string) (models.Todo, error)
	GetAllTodos(userID string) ([]models.Todo, error)
	UpdateTodoTitle(id, userID, title string) error
	// SetTodoCompleted flips the completed flag only when it differs from the
	// stored value; changed reports whether a transition happened.
	SetTodoCompleted(id, userID string, completed bool) (changed bool, err error)
	DeleteTodo(id, userID string) error

	// Habits (owner-scoped)
	AddHabit(habit models.Habit) error
	GetHabit(id, userID string) (models.Habit, error)
	GetAllHabits(userID string) ([]models.Habit, error)
	RenameHabit(id, userID, name string) error
	DeleteHabit(id, userID string) error
	// CompleteHabit stamps completed_at and advances the streak: +1 when the
	// previous completion fell on prevDay or completed_at is unset (never
	// completed, or uncompleted today and being restored), reset to 1 when the
	// last completion is stale. Guarded in SQL by "not already completed on
	// day"; changed is false when the guard rejected the write.
	CompleteHabit(id, userID string, now time.Time, day, prevDay string) (changed bool, err error)
	// UncompleteHabit clears completed_at and decrements the streak (floored
	// at zero), guarded by "completed on day".
	UncompleteHabit(id, userID, day string) (changed bool, err error)

	// Streaks
	GetUserStreak(userID string) (models.UserStreak, error)
	InsertUserStreak(streak models.UserStreak) error
	// UpdateUserStreak persists the new counters only if last_login_date still
	// equals expectLastLogin, so concurrent touches on the same day cannot
	// both increment.
	UpdateUserStreak(streak models.UserStreak, expectLastLogin string) (updated bool, err error)

	// Workspaces
	AddWorkspace(ws models.Workspace) error
	GetWorkspace(id string) (models.WorkspaceWithRole, error)
	GetWorkspacesForUser(userID string) ([]models.WorkspaceWithRole, error)
	DeleteWorkspace(id string) error
	AddMember(member models.WorkspaceMember) error
	GetMember(workspaceID, userID string) (models.WorkspaceMember, error)
	GetMembers(workspaceID string) ([]models.MemberInfo, error)
	RemoveMember(workspaceID, userID string) error
	CountOwners(workspaceID string) (int, error)

	// Workspace tasks
	AddWorkspaceTask(task models.WorkspaceTask) error
	GetWorkspaceTask(id string) (models.WorkspaceTask, error)
	GetWorkspaceTasks(workspaceID string, filters models.TaskFilters) ([]models.WorkspaceTask, error)
	UpdateWorkspaceTask(task models.WorkspaceTask) error
	DeleteWorkspaceTask(id string) error
	AddTaskComment(comment models.TaskComment) error
	GetTaskComments(taskID string) ([]models.TaskComment, error)
	GetTaskAttachments(taskID string) ([]models.TaskAttachment, error)
	AddTaskHistory(entry models.TaskHistoryEntry) error
	GetTaskHistory(taskID string) ([]models.TaskHistoryEntry, error)
}
