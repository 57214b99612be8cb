package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cotask/internal/models"
)

func newWorkspace(t *testing.T, eng *Engine, userID string) models.WorkspaceWithRole {
	t.Helper()
	ws, err := eng.CreateWorkspace(userID, "Project X", "shared work")
	require.NoError(t, err)
	return ws
}

func TestCreateWorkspaceEnrollsOwner(t *testing.T) {
	eng, _ := newTestEngine(t)

	ws := newWorkspace(t, eng, "user-1")
	require.Equal(t, models.RoleOwner, ws.Role)
	require.Equal(t, "user-1", ws.CreatedBy)

	members, err := eng.ListMembers("user-1", ws.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, models.RoleOwner, members[0].Role)
}

func TestGetWorkspaceAttachesRole(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")

	ws := newWorkspace(t, eng, "user-1")

	got, err := eng.GetWorkspace("user-1", ws.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, got.Role)
	require.Equal(t, "User One", got.CreatorName)

	// Existing workspace, non-member: forbidden.
	_, err = eng.GetWorkspace("user-2", ws.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	// Missing workspace: not found.
	_, err = eng.GetWorkspace("user-1", "nope")
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestInviteMember(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")
	addUser(t, eng, "user-3", "three@example.com", "User Three")

	ws := newWorkspace(t, eng, "user-1")

	member, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "")
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
	require.Equal(t, "user-2", member.UserID)

	// Duplicate invite conflicts.
	_, err = eng.InviteMember("user-1", ws.ID, "two@example.com", "member")
	require.Equal(t, KindConflict, KindOf(err))

	// Unknown email.
	_, err = eng.InviteMember("user-1", ws.ID, "ghost@example.com", "member")
	require.Equal(t, KindNotFound, KindOf(err))

	// A plain member cannot invite.
	_, err = eng.InviteMember("user-2", ws.ID, "three@example.com", "member")
	require.Equal(t, KindForbidden, KindOf(err))

	// An admin can.
	admin, err := eng.InviteMember("user-1", ws.ID, "three@example.com", "admin")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
}

func TestInviteMemberRejectsOwnerRole(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")

	ws := newWorkspace(t, eng, "user-1")

	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "owner")
	require.Equal(t, KindValidation, KindOf(err))

	_, err = eng.InviteMember("user-1", ws.ID, "two@example.com", "boss")
	require.Equal(t, KindValidation, KindOf(err))
}

func TestRemoveMemberRules(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")
	addUser(t, eng, "user-3", "three@example.com", "User Three")
	addUser(t, eng, "user-4", "four@example.com", "User Four")

	ws := newWorkspace(t, eng, "user-1")
	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "admin")
	require.NoError(t, err)
	_, err = eng.InviteMember("user-1", ws.ID, "three@example.com", "admin")
	require.NoError(t, err)
	_, err = eng.InviteMember("user-1", ws.ID, "four@example.com", "member")
	require.NoError(t, err)

	// An admin cannot remove the owner or another admin.
	err = eng.RemoveMember("user-2", ws.ID, "user-1")
	require.Equal(t, KindForbidden, KindOf(err))
	err = eng.RemoveMember("user-2", ws.ID, "user-3")
	require.Equal(t, KindForbidden, KindOf(err))

	// An admin can remove a plain member.
	require.NoError(t, eng.RemoveMember("user-2", ws.ID, "user-4"))

	// A removed member cannot act in the workspace anymore.
	_, err = eng.ListMembers("user-4", ws.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	// The owner can remove an admin.
	require.NoError(t, eng.RemoveMember("user-1", ws.ID, "user-3"))

	// Removing someone who is not a member is a not-found.
	err = eng.RemoveMember("user-1", ws.ID, "user-3")
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestRemoveMemberSelfLeaveRequiresManageRole(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")
	addUser(t, eng, "user-3", "three@example.com", "User Three")

	ws := newWorkspace(t, eng, "user-1")
	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "member")
	require.NoError(t, err)
	_, err = eng.InviteMember("user-1", ws.ID, "three@example.com", "admin")
	require.NoError(t, err)

	// Leaving is still a removal: a plain member cannot remove anyone,
	// themselves included, and an admin removing themselves is an admin
	// removing an admin.
	err = eng.RemoveMember("user-2", ws.ID, "user-2")
	require.Equal(t, KindForbidden, KindOf(err))
	err = eng.RemoveMember("user-3", ws.ID, "user-3")
	require.Equal(t, KindForbidden, KindOf(err))
}

func TestRemoveMemberSoleOwner(t *testing.T) {
	eng, _ := newTestEngine(t)

	ws := newWorkspace(t, eng, "user-1")

	err := eng.RemoveMember("user-1", ws.ID, "user-1")
	require.Equal(t, KindConflict, KindOf(err))
	require.Equal(t, "the sole owner cannot leave the workspace", Message(err))
}

func TestDeleteWorkspaceOwnerOnly(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")

	ws := newWorkspace(t, eng, "user-1")
	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "admin")
	require.NoError(t, err)

	err = eng.DeleteWorkspace("user-2", ws.ID)
	require.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, eng.DeleteWorkspace("user-1", ws.ID))

	_, err = eng.GetWorkspace("user-1", ws.ID)
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestListWorkspaces(t *testing.T) {
	eng, _ := newTestEngine(t)
	addUser(t, eng, "user-2", "two@example.com", "User Two")

	ws := newWorkspace(t, eng, "user-1")
	_, err := eng.InviteMember("user-1", ws.ID, "two@example.com", "member")
	require.NoError(t, err)

	mine, err := eng.ListWorkspaces("user-2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, models.RoleMember, mine[0].Role)
	require.Equal(t, ws.ID, mine[0].ID)
}
