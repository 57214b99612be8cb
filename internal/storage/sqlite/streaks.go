package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) GetUserStreak(userID string) (models.UserStreak, error) {
	row := s.db.QueryRow(`
		SELECT user_id, current_streak, max_streak, last_login_date
		FROM user_streaks WHERE user_id = ?`, userID)

	var st models.UserStreak
	err := row.Scan(&st.UserID, &st.CurrentStreak, &st.MaxStreak, &st.LastLoginDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserStreak{}, storage.ErrNotFound
		}
		return models.UserStreak{}, err
	}
	return st, nil
}

func (s *Store) InsertUserStreak(streak models.UserStreak) error {
	_, err := s.db.Exec(`
		INSERT INTO user_streaks (user_id, current_streak, max_streak, last_login_date)
		VALUES (?, ?, ?, ?)`,
		streak.UserID, streak.CurrentStreak, streak.MaxStreak, streak.LastLoginDate)
	return err
}

func (s *Store) UpdateUserStreak(streak models.UserStreak, expectLastLogin string) (bool, error) {
	// Compare-and-swap on last_login_date: a concurrent touch that already
	// moved the date causes zero affected rows instead of a double increment.
	result, err := s.db.Exec(`
		UPDATE user_streaks
		SET current_streak = ?, max_streak = ?, last_login_date = ?
		WHERE user_id = ? AND last_login_date = ?`,
		streak.CurrentStreak, streak.MaxStreak, streak.LastLoginDate,
		streak.UserID, expectLastLogin)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
