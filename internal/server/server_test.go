package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage/sqlite"
)

var testSecret = []byte("test-secret")

// stubGenerator returns a canned roadmap or error.
type stubGenerator struct {
	roadmap models.Roadmap
	err     error
}

func (g *stubGenerator) Generate(ctx context.Context, description string) (models.Roadmap, error) {
	return g.roadmap, g.err
}

func newTestServer(t *testing.T, generator Generator) *Server {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cotask.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	eng := engine.New(store)
	return NewServer(eng, generator, Config{JWTSecret: testSecret})
}

func signToken(t *testing.T, userID, email, name string) string {
	t.Helper()

	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

// do performs a request as the given user (empty userID sends no token) and
// decodes the JSON response body.
func do(t *testing.T, s *Server, method, path, userID string, body any) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, userID+"@example.com", "User "+userID))
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	resp := map[string]json.RawMessage{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func unmarshal[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", unmarshal[string](t, resp["status"]))
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodGet, "/api/todos", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "UNAUTHORIZED", unmarshal[string](t, resp["kind"]))
}

func TestBadTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret.
	claims := jwt.RegisteredClaims{Subject: "alice"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTodoLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodPost, "/api/todos", "alice", map[string]string{"title": " Buy milk "})
	require.Equal(t, http.StatusCreated, code)
	todo := unmarshal[models.Todo](t, resp["todo"])
	require.Equal(t, "Buy milk", todo.Title)

	code, resp = do(t, s, http.MethodPut, "/api/todos/"+todo.ID, "alice", map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, code)
	require.True(t, unmarshal[models.Todo](t, resp["todo"]).Completed)

	// Creation reward + completion reward.
	code, resp = do(t, s, http.MethodGet, "/api/profile", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 10, unmarshal[models.User](t, resp["user"]).Coins)

	// Someone else's todo is invisible.
	code, resp = do(t, s, http.MethodPut, "/api/todos/"+todo.ID, "bob", map[string]bool{"completed": false})
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "NOT_FOUND_OR_FORBIDDEN", unmarshal[string](t, resp["kind"]))

	code, _ = do(t, s, http.MethodDelete, "/api/todos/"+todo.ID, "alice", nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, s, http.MethodGet, "/api/todos", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, unmarshal[[]models.Todo](t, resp["todos"]))
}

func TestCreateTodoValidation(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodPost, "/api/todos", "alice", map[string]string{"title": "   "})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "VALIDATION_ERROR", unmarshal[string](t, resp["kind"]))

	code, _ = do(t, s, http.MethodPut, "/api/todos/some-id", "alice", map[string]string{})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHabitToggleEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodPost, "/api/habits", "alice", map[string]string{"name": "Meditate"})
	require.Equal(t, http.StatusCreated, code)
	habit := unmarshal[models.Habit](t, resp["habit"])

	code, resp = do(t, s, http.MethodPatch, "/api/habits/"+habit.ID+"?action=complete", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, unmarshal[models.Habit](t, resp["habit"]).Streak)

	code, resp = do(t, s, http.MethodPatch, "/api/habits/"+habit.ID+"?action=complete", "alice", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "CONFLICT", unmarshal[string](t, resp["kind"]))

	code, _ = do(t, s, http.MethodPatch, "/api/habits/"+habit.ID+"?action=explode", "alice", nil)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestStreakEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	code, resp := do(t, s, http.MethodGet, "/api/streaks", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 0, unmarshal[models.UserStreak](t, resp["streak"]).CurrentStreak)

	code, resp = do(t, s, http.MethodPost, "/api/streaks", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, unmarshal[models.UserStreak](t, resp["streak"]).CurrentStreak)
	require.NotContains(t, resp, "message")

	code, resp = do(t, s, http.MethodPost, "/api/streaks", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Already logged in today", unmarshal[string](t, resp["message"]))
}

func TestWorkspacePermissionsOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	// bob needs a user row before he can be invited by email.
	code, _ := do(t, s, http.MethodGet, "/api/profile", "bob", nil)
	require.Equal(t, http.StatusOK, code)

	code, resp := do(t, s, http.MethodPost, "/api/workspaces", "alice", map[string]string{"name": "Project X"})
	require.Equal(t, http.StatusCreated, code)
	ws := unmarshal[models.WorkspaceWithRole](t, resp["workspace"])
	require.Equal(t, models.RoleOwner, ws.Role)

	// Non-member cannot read it.
	code, resp = do(t, s, http.MethodGet, "/api/workspaces/"+ws.ID, "bob", nil)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "FORBIDDEN", unmarshal[string](t, resp["kind"]))

	code, _ = do(t, s, http.MethodPost, "/api/workspaces/"+ws.ID+"/members", "alice",
		map[string]string{"email": "bob@example.com", "role": "member"})
	require.Equal(t, http.StatusCreated, code)

	code, resp = do(t, s, http.MethodGet, "/api/workspaces/"+ws.ID, "bob", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, models.RoleMember, unmarshal[models.WorkspaceWithRole](t, resp["workspace"]).Role)

	// Duplicate invite conflicts.
	code, resp = do(t, s, http.MethodPost, "/api/workspaces/"+ws.ID+"/members", "alice",
		map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "CONFLICT", unmarshal[string](t, resp["kind"]))

	// Sole owner cannot remove themselves.
	code, resp = do(t, s, http.MethodDelete, "/api/workspaces/"+ws.ID+"/members/alice", "alice", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "CONFLICT", unmarshal[string](t, resp["kind"]))
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	code, _ := do(t, s, http.MethodGet, "/api/profile", "bob", nil)
	require.Equal(t, http.StatusOK, code)

	code, resp := do(t, s, http.MethodPost, "/api/workspaces", "alice", map[string]string{"name": "Project X"})
	require.Equal(t, http.StatusCreated, code)
	ws := unmarshal[models.WorkspaceWithRole](t, resp["workspace"])

	code, _ = do(t, s, http.MethodPost, "/api/workspaces/"+ws.ID+"/members", "alice",
		map[string]string{"email": "bob@example.com", "role": "member"})
	require.Equal(t, http.StatusCreated, code)

	code, resp = do(t, s, http.MethodPost, "/api/workspaces/"+ws.ID+"/tasks", "alice",
		map[string]string{"title": "Ship it"})
	require.Equal(t, http.StatusCreated, code)
	task := unmarshal[models.WorkspaceTask](t, resp["task"])
	require.Equal(t, "todo", task.Status)

	// bob is a plain member and neither creator nor assignee.
	code, resp = do(t, s, http.MethodPut, "/api/tasks/"+task.ID, "bob", map[string]string{"status": "done"})
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "FORBIDDEN", unmarshal[string](t, resp["kind"]))

	code, _ = do(t, s, http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]string{"status": "done"})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, s, http.MethodPost, "/api/tasks/"+task.ID+"/comments", "bob", map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, code)

	code, resp = do(t, s, http.MethodGet, "/api/tasks/"+task.ID, "bob", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, task.ID, unmarshal[models.WorkspaceTask](t, resp["task"]).ID)
	require.Len(t, unmarshal[[]models.TaskComment](t, resp["comments"]), 1)

	code, resp = do(t, s, http.MethodGet, "/api/tasks/"+task.ID+"/history", "alice", nil)
	require.Equal(t, http.StatusOK, code)
	history := unmarshal[[]models.TaskHistoryEntry](t, resp["history"])
	require.Len(t, history, 1)
	require.Equal(t, "status", history[0].FieldName)
}

func TestRoadmapEndpoint(t *testing.T) {
	gen := &stubGenerator{
		roadmap: models.Roadmap{
			Raw:   "### Week 1: Basics",
			Weeks: []models.RoadmapWeek{{Number: 1, Focus: "Basics"}},
		},
	}
	s := newTestServer(t, gen)

	code, resp := do(t, s, http.MethodPost, "/api/roadmap", "alice", map[string]string{"description": "learn Go"})
	require.Equal(t, http.StatusOK, code)
	roadmap := unmarshal[models.Roadmap](t, resp["roadmap"])
	require.Len(t, roadmap.Weeks, 1)

	code, _ = do(t, s, http.MethodPost, "/api/roadmap", "alice", map[string]string{})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestRoadmapUpstreamFailure(t *testing.T) {
	s := newTestServer(t, &stubGenerator{err: errors.New("rate limited")})

	code, resp := do(t, s, http.MethodPost, "/api/roadmap", "alice", map[string]string{"description": "learn Go"})
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "UPSTREAM_ERROR", unmarshal[string](t, resp["kind"]))

	// No generator configured at all.
	s = newTestServer(t, nil)
	code, _ = do(t, s, http.MethodPost, "/api/roadmap", "alice", map[string]string{"description": "learn Go"})
	require.Equal(t, http.StatusInternalServerError, code)
}
