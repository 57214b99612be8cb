package engine

import (
	"errors"

	"github.com/julianstephens/cotask/internal/logger"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/utils"
)

// GetStreak returns the user's streak counters. A user who has never touched
// their streak gets zero counters, not an error.
func (e *Engine) GetStreak(userID string) (models.UserStreak, error) {
	if userID == "" {
		return models.UserStreak{}, errUnauthorized()
	}

	streak, err := e.store.GetUserStreak(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserStreak{UserID: userID}, nil
		}
		return models.UserStreak{}, errStore("fetch streak", err)
	}
	return streak, nil
}

// TouchStreak records a login-day for the user and applies the streak
// transition: first touch creates the row at 1/1, a consecutive day
// increments, a gap (or clock skew) resets to 1, and a repeat touch on the
// same day is a no-op reported through Updated=false.
func (e *Engine) TouchStreak(userID string) (models.StreakResult, error) {
	if userID == "" {
		return models.StreakResult{}, errUnauthorized()
	}

	today := utils.Today(e.now())

	existing, err := e.store.GetUserStreak(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.StreakResult{}, errStore("fetch streak", err)
		}

		fresh := models.UserStreak{
			UserID:        userID,
			CurrentStreak: 1,
			MaxStreak:     1,
			LastLoginDate: today,
		}
		if insertErr := e.store.InsertUserStreak(fresh); insertErr != nil {
			// A concurrent touch may have created the row first; fall back
			// to reading whatever won.
			if raced, readErr := e.store.GetUserStreak(userID); readErr == nil {
				return models.StreakResult{Streak: raced, Updated: false}, nil
			}
			return models.StreakResult{}, errStore("create streak", insertErr)
		}
		return models.StreakResult{Streak: fresh, Updated: true}, nil
	}

	diff, err := utils.DayDiff(existing.LastLoginDate, today)
	if err != nil {
		return models.StreakResult{}, errStore("compute streak gap", err)
	}

	if diff == 0 {
		return models.StreakResult{Streak: existing, Updated: false}, nil
	}

	next := existing
	next.LastLoginDate = today
	if diff == 1 {
		next.CurrentStreak++
		if next.CurrentStreak > next.MaxStreak {
			next.MaxStreak = next.CurrentStreak
		}
	} else {
		// Gap of two or more days, or a negative diff from clock skew:
		// restart the run.
		next.CurrentStreak = 1
		if next.MaxStreak < 1 {
			next.MaxStreak = 1
		}
	}

	updated, err := e.store.UpdateUserStreak(next, existing.LastLoginDate)
	if err != nil {
		return models.StreakResult{}, errStore("update streak", err)
	}
	if !updated {
		// Lost the compare-and-swap to a concurrent touch. At most one
		// increment per day: report the winner's state as a no-op.
		logger.Debug("Concurrent streak touch detected", "user", userID)
		current, err := e.store.GetUserStreak(userID)
		if err != nil {
			return models.StreakResult{}, errStore("fetch streak", err)
		}
		return models.StreakResult{Streak: current, Updated: false}, nil
	}

	return models.StreakResult{Streak: next, Updated: true}, nil
}
