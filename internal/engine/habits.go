package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/utils"
	"github.com/julianstephens/cotask/internal/validation"
)

// ListHabits returns the user's habits, newest first.
func (e *Engine) ListHabits(userID string) ([]models.Habit, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	habits, err := e.store.GetAllHabits(userID)
	if err != nil {
		return nil, errStore("fetch habits", err)
	}
	return habits, nil
}

// CreateHabit creates a habit with a zero streak and no completion.
func (e *Engine) CreateHabit(userID, name string) (models.Habit, error) {
	if userID == "" {
		return models.Habit{}, errUnauthorized()
	}

	trimmed, err := validation.TrimmedNonEmpty("name", name)
	if err != nil {
		return models.Habit{}, errValidationf("%v", err)
	}

	habit := models.Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      trimmed,
		Streak:    0,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.AddHabit(habit); err != nil {
		return models.Habit{}, errStore("create habit", err)
	}
	return habit, nil
}

// RenameHabit changes the name of an owned habit.
func (e *Engine) RenameHabit(userID, id, name string) (models.Habit, error) {
	if userID == "" {
		return models.Habit{}, errUnauthorized()
	}

	trimmed, err := validation.TrimmedNonEmpty("name", name)
	if err != nil {
		return models.Habit{}, errValidationf("%v", err)
	}

	if err := e.store.RenameHabit(id, userID, trimmed); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, errNotFoundOrForbidden("habit")
		}
		return models.Habit{}, errStore("rename habit", err)
	}

	habit, err := e.store.GetHabit(id, userID)
	if err != nil {
		return models.Habit{}, errStore("fetch habit", err)
	}
	return habit, nil
}

// DeleteHabit removes an owned habit.
func (e *Engine) DeleteHabit(userID, id string) error {
	if userID == "" {
		return errUnauthorized()
	}

	if err := e.store.DeleteHabit(id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFoundOrForbidden("habit")
		}
		return errStore("delete habit", err)
	}
	return nil
}

// ToggleHabit completes or uncompletes a habit for the current UTC day. Both
// directions are guarded by a conditional write on the completion date, so a
// double complete (or an uncomplete of a habit not completed today) reports a
// conflict instead of double-counting the streak.
func (e *Engine) ToggleHabit(userID, id, action string) (models.Habit, error) {
	if userID == "" {
		return models.Habit{}, errUnauthorized()
	}

	action, err := validation.ToggleAction(action)
	if err != nil {
		return models.Habit{}, errValidationf("%v", err)
	}

	if _, err := e.store.GetHabit(id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, errNotFoundOrForbidden("habit")
		}
		return models.Habit{}, errStore("fetch habit", err)
	}

	now := e.now().UTC()
	day := utils.Today(now)
	prevDay := utils.Today(now.AddDate(0, 0, -1))

	switch action {
	case constants.ActionComplete:
		changed, err := e.store.CompleteHabit(id, userID, now, day, prevDay)
		if err != nil {
			return models.Habit{}, errStore("complete habit", err)
		}
		if !changed {
			return models.Habit{}, errConflict("habit already completed today")
		}
	case constants.ActionUncomplete:
		changed, err := e.store.UncompleteHabit(id, userID, day)
		if err != nil {
			return models.Habit{}, errStore("uncomplete habit", err)
		}
		if !changed {
			return models.Habit{}, errConflict("habit was not completed today")
		}
	}

	habit, err := e.store.GetHabit(id, userID)
	if err != nil {
		return models.Habit{}, errStore("fetch habit", err)
	}
	return habit, nil
}
