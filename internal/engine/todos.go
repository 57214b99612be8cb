package engine

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/logger"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/validation"
)

// ListTodos returns the user's todos, newest first.
func (e *Engine) ListTodos(userID string) ([]models.Todo, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	todos, err := e.store.GetAllTodos(userID)
	if err != nil {
		return nil, errStore("fetch todos", err)
	}
	return todos, nil
}

// CreateTodo creates a todo with a trimmed non-empty title and grants the
// creation coin reward.
func (e *Engine) CreateTodo(userID, title string) (models.Todo, error) {
	if userID == "" {
		return models.Todo{}, errUnauthorized()
	}

	trimmed, err := validation.TrimmedNonEmpty("title", title)
	if err != nil {
		return models.Todo{}, errValidationf("%v", err)
	}

	todo := models.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     trimmed,
		Completed: false,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.AddTodo(todo); err != nil {
		return models.Todo{}, errStore("create todo", err)
	}

	e.rewardCoins(userID, "todo created")

	return todo, nil
}

// UpdateTodo applies a title and/or completed change to an owned todo. The
// coin reward fires only when completed transitions from false to true;
// re-setting an already-true flag is accepted but grants nothing.
func (e *Engine) UpdateTodo(userID, id string, update models.TodoUpdate) (models.Todo, error) {
	if userID == "" {
		return models.Todo{}, errUnauthorized()
	}
	if update.IsEmpty() {
		return models.Todo{}, errValidationf("no valid update fields provided")
	}

	if _, err := e.store.GetTodo(id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Todo{}, errNotFoundOrForbidden("todo")
		}
		return models.Todo{}, errStore("fetch todo", err)
	}

	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return models.Todo{}, errValidationf("title is required")
		}
		if err := e.store.UpdateTodoTitle(id, userID, trimmed); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.Todo{}, errNotFoundOrForbidden("todo")
			}
			return models.Todo{}, errStore("update todo", err)
		}
	}

	if update.Completed != nil {
		changed, err := e.store.SetTodoCompleted(id, userID, *update.Completed)
		if err != nil {
			return models.Todo{}, errStore("update todo", err)
		}
		if changed && *update.Completed {
			e.rewardCoins(userID, "todo completed")
		}
	}

	todo, err := e.store.GetTodo(id, userID)
	if err != nil {
		return models.Todo{}, errStore("fetch todo", err)
	}
	return todo, nil
}

// DeleteTodo removes an owned todo.
func (e *Engine) DeleteTodo(userID, id string) error {
	if userID == "" {
		return errUnauthorized()
	}

	if err := e.store.DeleteTodo(id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFoundOrForbidden("todo")
		}
		return errStore("delete todo", err)
	}
	return nil
}

// rewardCoins applies the fixed coin reward as an atomic store-side
// increment. The reward is best-effort: a failure is logged and never
// surfaces to the caller.
func (e *Engine) rewardCoins(userID, reason string) {
	if err := e.store.AddCoins(userID, constants.TodoRewardCoins); err != nil {
		logger.Warn("Coin reward failed", "user", userID, "reason", reason, "error", err)
	}
}
