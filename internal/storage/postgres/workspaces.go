package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

func (s *Store) AddWorkspace(ws models.Workspace) error {
	_, err := s.db.Exec(`
		INSERT INTO collaborative_workspaces (id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ws.ID, ws.Name, ws.Description, ws.CreatedBy, ws.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetWorkspace(id string) (models.WorkspaceWithRole, error) {
	row := s.db.QueryRow(`
		SELECT w.id, w.name, w.description, w.created_by, w.created_at, u.name, u.avatar
		FROM collaborative_workspaces w
		JOIN users u ON u.id = w.created_by
		WHERE w.id = $1`, id)

	var ws models.WorkspaceWithRole
	var createdAt string

	err := row.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedBy, &createdAt,
		&ws.CreatorName, &ws.CreatorAvatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WorkspaceWithRole{}, storage.ErrNotFound
		}
		return models.WorkspaceWithRole{}, err
	}

	ws.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.WorkspaceWithRole{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return ws, nil
}

func (s *Store) GetWorkspacesForUser(userID string) ([]models.WorkspaceWithRole, error) {
	rows, err := s.db.Query(`
		SELECT w.id, w.name, w.description, w.created_by, w.created_at, m.role, u.name, u.avatar
		FROM collaborative_workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		JOIN users u ON u.id = w.created_by
		WHERE m.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []models.WorkspaceWithRole
	for rows.Next() {
		var ws models.WorkspaceWithRole
		var createdAt string

		err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedBy, &createdAt,
			&ws.Role, &ws.CreatorName, &ws.CreatorAvatar)
		if err != nil {
			return nil, err
		}

		ws.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for workspace %s: %w", ws.ID, err)
		}

		workspaces = append(workspaces, ws)
	}

	return workspaces, rows.Err()
}

func (s *Store) DeleteWorkspace(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM collaborative_workspaces WHERE id = $1`, id)
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

func (s *Store) AddMember(member models.WorkspaceMember) error {
	_, err := s.db.Exec(`
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)`,
		member.WorkspaceID, member.UserID, string(member.Role),
		member.JoinedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetMember(workspaceID, userID string) (models.WorkspaceMember, error) {
	row := s.db.QueryRow(`
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID)

	var m models.WorkspaceMember
	var joinedAt string

	err := row.Scan(&m.WorkspaceID, &m.UserID, &m.Role, &joinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WorkspaceMember{}, storage.ErrNotFound
		}
		return models.WorkspaceMember{}, err
	}

	m.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
	if err != nil {
		return models.WorkspaceMember{}, fmt.Errorf("failed to parse joined_at: %w", err)
	}
	return m, nil
}

func (s *Store) GetMembers(workspaceID string) ([]models.MemberInfo, error) {
	rows, err := s.db.Query(`
		SELECT m.workspace_id, m.user_id, m.role, m.joined_at, u.name, u.email, u.avatar
		FROM workspace_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY m.joined_at`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.MemberInfo
	for rows.Next() {
		var m models.MemberInfo
		var joinedAt string

		err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.Role, &joinedAt,
			&m.Name, &m.Email, &m.Avatar)
		if err != nil {
			return nil, err
		}

		m.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse joined_at for member %s: %w", m.UserID, err)
		}

		members = append(members, m)
	}

	return members, rows.Err()
}

func (s *Store) RemoveMember(workspaceID, userID string) error {
	result, err := s.db.Exec(`
		DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, userID)
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

func (s *Store) CountOwners(workspaceID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM workspace_members
		WHERE workspace_id = $1 AND role = 'owner'`, workspaceID).Scan(&count)
	return count, err
}
