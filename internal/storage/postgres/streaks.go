package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) GetUserStreak(userID string) (models.UserStreak, error) {
	row := s.db.QueryRow(`
		SELECT user_id, current_streak, max_streak, last_login_date
		FROM user_streaks WHERE user_id = $1`, userID)

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
		VALUES ($1, $2, $3, $4)`,
		streak.UserID, streak.CurrentStreak, streak.MaxStreak, streak.LastLoginDate)
	return err
}

func (s *Store) UpdateUserStreak(streak models.UserStreak, expectLastLogin string) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE user_streaks
		SET current_streak = $1, max_streak = $2, last_login_date = $3
		WHERE user_id = $4 AND last_login_date = $5`,
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
