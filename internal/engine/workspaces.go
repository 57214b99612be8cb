package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/julianstephens/cotask/internal/logger"
	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/validation"
)

// CreateWorkspace creates a workspace and enrolls the creator as its owner.
// If the owner enrollment fails the workspace row is rolled back so no
// memberless workspace is left behind.
func (e *Engine) CreateWorkspace(userID, name, description string) (models.WorkspaceWithRole, error) {
	if userID == "" {
		return models.WorkspaceWithRole{}, errUnauthorized()
	}

	trimmed, err := validation.TrimmedNonEmpty("name", name)
	if err != nil {
		return models.WorkspaceWithRole{}, errValidationf("%v", err)
	}

	now := e.now().UTC()
	ws := models.Workspace{
		ID:          uuid.NewString(),
		Name:        trimmed,
		Description: description,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := e.store.AddWorkspace(ws); err != nil {
		return models.WorkspaceWithRole{}, errStore("create workspace", err)
	}

	member := models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        models.RoleOwner,
		JoinedAt:    now,
	}
	if err := e.store.AddMember(member); err != nil {
		if delErr := e.store.DeleteWorkspace(ws.ID); delErr != nil {
			logger.Error("Workspace rollback failed", "workspace", ws.ID, "error", delErr)
		}
		return models.WorkspaceWithRole{}, errStore("enroll workspace owner", err)
	}

	return models.WorkspaceWithRole{Workspace: ws, Role: models.RoleOwner}, nil
}

// ListWorkspaces returns every workspace the user belongs to, with the user's
// role attached.
func (e *Engine) ListWorkspaces(userID string) ([]models.WorkspaceWithRole, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	workspaces, err := e.store.GetWorkspacesForUser(userID)
	if err != nil {
		return nil, errStore("fetch workspaces", err)
	}
	return workspaces, nil
}

// GetWorkspace returns one workspace with the requesting user's role. A
// missing workspace is a not-found; an existing workspace the user does not
// belong to is forbidden.
func (e *Engine) GetWorkspace(userID, workspaceID string) (models.WorkspaceWithRole, error) {
	if userID == "" {
		return models.WorkspaceWithRole{}, errUnauthorized()
	}

	ws, err := e.store.GetWorkspace(workspaceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WorkspaceWithRole{}, errNotFound("workspace")
		}
		return models.WorkspaceWithRole{}, errStore("fetch workspace", err)
	}

	member, err := e.requireMember(workspaceID, userID)
	if err != nil {
		return models.WorkspaceWithRole{}, err
	}
	ws.Role = member.Role
	return ws, nil
}

// DeleteWorkspace removes a workspace and, via cascade, its members and
// tasks. Owner only.
func (e *Engine) DeleteWorkspace(userID, workspaceID string) error {
	if userID == "" {
		return errUnauthorized()
	}

	member, err := e.requireMember(workspaceID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleOwner {
		return errForbidden("only the workspace owner can delete a workspace")
	}

	if err := e.store.DeleteWorkspace(workspaceID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound("workspace")
		}
		return errStore("delete workspace", err)
	}
	return nil
}

// ListMembers returns the workspace membership, visible to any member.
func (e *Engine) ListMembers(userID, workspaceID string) ([]models.MemberInfo, error) {
	if userID == "" {
		return nil, errUnauthorized()
	}

	if _, err := e.requireMember(workspaceID, userID); err != nil {
		return nil, err
	}

	members, err := e.store.GetMembers(workspaceID)
	if err != nil {
		return nil, errStore("fetch members", err)
	}
	return members, nil
}

// InviteMember adds the user identified by email to the workspace. Only
// owners and admins may invite, and an invite never grants a role above the
// inviter's own reach.
func (e *Engine) InviteMember(userID, workspaceID, email, role string) (models.WorkspaceMember, error) {
	if userID == "" {
		return models.WorkspaceMember{}, errUnauthorized()
	}
	if email == "" {
		return models.WorkspaceMember{}, errValidationf("email is required")
	}

	newRole, err := validation.Role(role)
	if err != nil {
		return models.WorkspaceMember{}, errValidationf("%v", err)
	}
	if newRole == models.RoleOwner {
		return models.WorkspaceMember{}, errValidationf("cannot invite a member as owner")
	}

	inviter, err := e.requireMember(workspaceID, userID)
	if err != nil {
		return models.WorkspaceMember{}, err
	}
	if !inviter.Role.CanManageMembers() {
		return models.WorkspaceMember{}, errForbidden("only owners and admins can invite members")
	}

	invitee, err := e.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WorkspaceMember{}, errNotFound("user")
		}
		return models.WorkspaceMember{}, errStore("fetch user", err)
	}

	if _, err := e.store.GetMember(workspaceID, invitee.ID); err == nil {
		return models.WorkspaceMember{}, errConflict("user is already a member of this workspace")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.WorkspaceMember{}, errStore("fetch member", err)
	}

	member := models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      invitee.ID,
		Role:        newRole,
		JoinedAt:    e.now().UTC(),
	}
	if err := e.store.AddMember(member); err != nil {
		return models.WorkspaceMember{}, errStore("add member", err)
	}
	return member, nil
}

// RemoveMember removes a member from the workspace. Only owners and admins
// may remove anyone, themselves included. Admins cannot remove owners or
// other admins, nobody can remove an owner other than the owner leaving on
// their own, and an owner cannot leave while they are the sole owner.
func (e *Engine) RemoveMember(userID, workspaceID, targetUserID string) error {
	if userID == "" {
		return errUnauthorized()
	}

	actor, err := e.requireMember(workspaceID, userID)
	if err != nil {
		return err
	}
	if !actor.Role.CanManageMembers() {
		return errForbidden("only owners and admins can remove members")
	}

	target, err := e.store.GetMember(workspaceID, targetUserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound("member")
		}
		return errStore("fetch member", err)
	}

	if target.Role == models.RoleOwner && userID != targetUserID {
		return errForbidden("owners cannot be removed from their workspace")
	}
	if actor.Role == models.RoleAdmin && target.Role != models.RoleMember {
		return errForbidden("admins can only remove members")
	}

	if userID == targetUserID && target.Role == models.RoleOwner {
		owners, err := e.store.CountOwners(workspaceID)
		if err != nil {
			return errStore("count owners", err)
		}
		if owners <= 1 {
			return errConflict("the sole owner cannot leave the workspace")
		}
	}

	if err := e.store.RemoveMember(workspaceID, targetUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound("member")
		}
		return errStore("remove member", err)
	}
	return nil
}

// requireMember loads the caller's membership row, mapping a missing row to
// forbidden: the workspace exists (or not) identically for non-members.
func (e *Engine) requireMember(workspaceID, userID string) (models.WorkspaceMember, error) {
	member, err := e.store.GetMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WorkspaceMember{}, errForbidden("you are not a member of this workspace")
		}
		return models.WorkspaceMember{}, errStore("fetch member", err)
	}
	return member, nil
}
