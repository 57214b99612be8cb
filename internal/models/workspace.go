package models

import "time"

// Role governs permitted mutations within a workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known workspace roles.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// CanManageMembers reports whether the role may invite or remove members.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Workspace is a shared container of tasks with role-scoped membership.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkspaceWithRole is a workspace annotated with the requesting user's role
// and the creator's display fields, as returned by list and detail reads.
type WorkspaceWithRole struct {
	Workspace
	Role          Role   `json:"role"`
	CreatorName   string `json:"creator_name,omitempty"`
	CreatorAvatar string `json:"creator_avatar,omitempty"`
}

// WorkspaceMember is one membership row, keyed by (workspace, user).
type WorkspaceMember struct {
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// MemberInfo is a membership row joined with the member's user record for
// member listings.
type MemberInfo struct {
	WorkspaceMember
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
