package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "cotask.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.EnsureUser(models.User{
		ID:        "user-1",
		Name:      "User One",
		Email:     "one@example.com",
		CreatedAt: time.Now().UTC(),
	}))
	return store
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	require.ErrorContains(t, err, "run 'cotask migrate' first")
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cotask.db")

	store := NewStore(path)
	require.NoError(t, store.Init())
	require.NoError(t, store.Close())

	reopened := NewStore(path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()

	_, err := reopened.GetUser("nobody")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetTodoCompletedReportsTransition(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddTodo(models.Todo{
		ID:        "todo-1",
		UserID:    "user-1",
		Title:     "Buy milk",
		CreatedAt: time.Now().UTC(),
	}))

	changed, err := store.SetTodoCompleted("todo-1", "user-1", true)
	require.NoError(t, err)
	require.True(t, changed)

	// Same value again: no transition.
	changed, err = store.SetTodoCompleted("todo-1", "user-1", true)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = store.SetTodoCompleted("todo-1", "user-1", false)
	require.NoError(t, err)
	require.True(t, changed)

	// Wrong owner never transitions.
	changed, err = store.SetTodoCompleted("todo-1", "someone-else", true)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestUpdateUserStreakIsConditional(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.InsertUserStreak(models.UserStreak{
		UserID:        "user-1",
		CurrentStreak: 1,
		MaxStreak:     1,
		LastLoginDate: "2025-06-01",
	}))

	next := models.UserStreak{
		UserID:        "user-1",
		CurrentStreak: 2,
		MaxStreak:     2,
		LastLoginDate: "2025-06-02",
	}

	// Stale expectation loses.
	updated, err := store.UpdateUserStreak(next, "2025-05-30")
	require.NoError(t, err)
	require.False(t, updated)

	updated, err = store.UpdateUserStreak(next, "2025-06-01")
	require.NoError(t, err)
	require.True(t, updated)

	got, err := store.GetUserStreak("user-1")
	require.NoError(t, err)
	require.Equal(t, 2, got.CurrentStreak)
	require.Equal(t, "2025-06-02", got.LastLoginDate)
}

func TestAddCoinsAccumulates(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddCoins("user-1", 5))
	require.NoError(t, store.AddCoins("user-1", 5))

	user, err := store.GetUser("user-1")
	require.NoError(t, err)
	require.Equal(t, 10, user.Coins)
}

func TestGetUserByEmail(t *testing.T) {
	store := newTestStore(t)

	user, err := store.GetUserByEmail("one@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)

	_, err = store.GetUserByEmail("ghost@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
