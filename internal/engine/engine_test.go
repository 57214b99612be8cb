package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cotask/internal/storage/sqlite"
)

// fakeClock is a settable time source for simulating day rollovers.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cotask.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	eng := New(store, WithNow(clock.Now))

	require.NoError(t, eng.EnsureUser("user-1", "one@example.com", "User One"))
	return eng, clock
}

func addUser(t *testing.T, eng *Engine, id, email, name string) {
	t.Helper()
	require.NoError(t, eng.EnsureUser(id, email, name))
}

func TestKindOfDefaultsToStore(t *testing.T) {
	require.Equal(t, KindStore, KindOf(errStore("do thing", nil)))
	require.Equal(t, KindValidation, KindOf(errValidationf("bad input")))
}
