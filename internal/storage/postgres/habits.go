package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) AddHabit(habit models.Habit) error {
	var completedAt sql.NullString
	if habit.CompletedAt != nil {
		completedAt = sql.NullString{String: habit.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, streak, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		habit.ID, habit.UserID, habit.Name, habit.Streak, completedAt,
		habit.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetHabit(id, userID string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, streak, completed_at, created_at
		FROM habits WHERE id = $1 AND user_id = $2`, id, userID)

	h, err := scanHabit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetAllHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, streak, completed_at, created_at
		FROM habits WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) RenameHabit(id, userID, name string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET name = $1 WHERE id = $2 AND user_id = $3`, name, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteHabit(id, userID string) error {
	result, err := s.db.Exec(`
		DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CompleteHabit(id, userID string, now time.Time, day, prevDay string) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE habits SET
			streak = CASE WHEN completed_at IS NULL OR substr(completed_at, 1, 10) = $1 THEN streak + 1 ELSE 1 END,
			completed_at = $2
		WHERE id = $3 AND user_id = $4
		  AND (completed_at IS NULL OR substr(completed_at, 1, 10) != $5)`,
		prevDay, now.UTC().Format(time.RFC3339), id, userID, day)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Store) UncompleteHabit(id, userID, day string) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE habits SET completed_at = NULL, streak = GREATEST(0, streak - 1)
		WHERE id = $1 AND user_id = $2
		  AND completed_at IS NOT NULL AND substr(completed_at, 1, 10) = $3`,
		id, userID, day)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var completedAt sql.NullString
	var createdAt string

	if err := scan(&h.ID, &h.UserID, &h.Name, &h.Streak, &completedAt, &createdAt); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		h.CompletedAt = &t
	}

	return h, nil
}
