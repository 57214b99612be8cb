package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) AddTodo(todo models.Todo) error {
	_, err := s.db.Exec(`
		INSERT INTO todos (id, user_id, title, completed, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		todo.ID, todo.UserID, todo.Title, todo.Completed,
		todo.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetTodo(id, userID string) (models.Todo, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, completed, created_at
		FROM todos WHERE id = $1 AND user_id = $2`, id, userID)

	var t models.Todo
	var createdAt string

	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return t, nil
}

func (s *Store) GetAllTodos(userID string) ([]models.Todo, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, completed, created_at
		FROM todos WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		var createdAt string

		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &createdAt); err != nil {
			return nil, err
		}

		t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for todo %s: %w", t.ID, err)
		}

		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (s *Store) UpdateTodoTitle(id, userID, title string) error {
	result, err := s.db.Exec(`
		UPDATE todos SET title = $1 WHERE id = $2 AND user_id = $3`, title, id, userID)
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

func (s *Store) SetTodoCompleted(id, userID string, completed bool) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE todos SET completed = $1
		WHERE id = $2 AND user_id = $3 AND completed != $1`,
		completed, id, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Store) DeleteTodo(id, userID string) error {
	result, err := s.db.Exec(`
		DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
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
