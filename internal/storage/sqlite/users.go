package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) EnsureUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, name, email, avatar, coins, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		user.ID, user.Name, user.Email, user.Avatar, user.Coins,
		user.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, coins, created_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, coins, created_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *Store) UpdateUserProfile(id, name, avatar string) (models.User, error) {
	result, err := s.db.Exec(`
		UPDATE users SET name = ?, avatar = ? WHERE id = ?`, name, avatar, id)
	if err != nil {
		return models.User{}, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if rows == 0 {
		return models.User{}, storage.ErrNotFound
	}

	return s.GetUser(id)
}

func (s *Store) AddCoins(userID string, amount int) error {
	result, err := s.db.Exec(`
		UPDATE users SET coins = coins + ? WHERE id = ?`, amount, userID)
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

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Coins, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}
