package service

import (
	"testing"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionService_AdminIsAlwaysLeader(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	f.org(t, admin)
	events := f.committee(t, admin, "Events")

	d, err := f.svc.Permission.Resolve(f.ctx, admin.UserId, events.CommitteeId)
	require.NoError(t, err)
	assert.True(t, d.IsAdmin)
	assert.Equal(t, model.PermissionLeader, d.Level)

	for _, req := range []Requirement{RequireNone, RequireMember, RequireLeader, RequireAdmin} {
		d, err := f.svc.Permission.Check(f.ctx, admin.UserId, events.CommitteeId, req)
		require.NoError(t, err)
		assert.True(t, d.Allowed, req.String())
	}
}

func TestPermissionService_MaxAcrossRoles(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	user := f.register(t, "user@example.com")
	f.org(t, admin)
	events := f.committee(t, admin, "Events")

	f.grant(t, admin, user, "Member", events, "MEMBER")
	d, err := f.svc.Permission.Resolve(f.ctx, user.UserId, events.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionMember, d.Level)
	assert.False(t, d.IsAdmin)

	f.grant(t, admin, user, "Chair", events, "LEADER")
	d, err = f.svc.Permission.Resolve(f.ctx, user.UserId, events.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionLeader, d.Level)

	d, err = f.svc.Permission.Check(f.ctx, user.UserId, events.CommitteeId, RequireAdmin)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestPermissionService_NoRolesIsNone(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	outsider := f.register(t, "outsider@example.com")
	f.org(t, admin)
	events := f.committee(t, admin, "Events")

	d, err := f.svc.Permission.Resolve(f.ctx, outsider.UserId, events.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionNone, d.Level)

	_, err = f.svc.Permission.Require(f.ctx, outsider.UserId, events.CommitteeId, RequireMember)
	assert.ErrorIs(t, err, http.PermissionDenied)

	d, err = f.svc.Permission.Resolve(f.ctx, "ghost", events.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionNone, d.Level)
}

func TestPermissionService_UnknownCommittee(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	outsider := f.register(t, "outsider@example.com")
	f.org(t, admin)

	d, err := f.svc.Permission.Resolve(f.ctx, outsider.UserId, "missing")
	require.NoError(t, err)
	assert.False(t, d.CommitteeFound)
	assert.Equal(t, model.PermissionNone, d.Level)

	_, err = f.svc.Permission.Require(f.ctx, outsider.UserId, "missing", RequireMember)
	assert.ErrorIs(t, err, http.PermissionDenied)

	_, err = f.svc.Permission.Require(f.ctx, admin.UserId, "missing", RequireMember)
	assert.ErrorIs(t, err, http.PermissionDenied)
	_, err = f.svc.Permission.Require(f.ctx, admin.UserId, "missing", RequireAdmin)
	assert.ErrorIs(t, err, http.PermissionDenied)

	_, err = f.svc.Permission.Check(f.ctx, admin.UserId, "", RequireMember)
	assert.ErrorIs(t, err, http.CommitteeIdIsEmpty)
}

func TestPermissionService_IgnoresRolesFromOtherOrgs(t *testing.T) {
	f := newFixture(t)
	adminA := f.register(t, "a@example.com")
	adminB := f.register(t, "b@example.com")
	user := f.register(t, "user@example.com")
	f.org(t, adminA)
	f.org(t, adminB)
	eventsA := f.committee(t, adminA, "Events")
	eventsB := f.committee(t, adminB, "Events")

	role, err := f.svc.Role.Create(f.ctx, adminB.UserId, &model.CreateRoleReq{Name: "Chair"})
	require.NoError(t, err)
	_, err = f.svc.Role.SetPermissions(f.ctx, adminB.UserId, &model.SetRolePermissionsReq{
		RoleId:      role.RoleId,
		Permissions: []model.CommitteePermissionReq{{CommitteeId: eventsA.CommitteeId, Permission: "LEADER"}},
	})
	assert.ErrorIs(t, err, http.CrossOrgPermission)

	// a row written behind the service's back still cannot leak across orgs
	require.NoError(t, f.repos.Permission.Upsert(f.ctx, role.RoleId, eventsA.CommitteeId, model.PermissionLeader))
	require.NoError(t, f.svc.Role.Assign(f.ctx, adminB.UserId, &model.AssignRoleReq{UserId: user.UserId, RoleId: role.RoleId}))

	d, err := f.svc.Permission.Resolve(f.ctx, user.UserId, eventsA.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionNone, d.Level)

	d, err = f.svc.Permission.Resolve(f.ctx, user.UserId, eventsB.CommitteeId)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionNone, d.Level)
}

func TestRoleService_SetPermissionsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	f.org(t, admin)
	events := f.committee(t, admin, "Events")
	finance := f.committee(t, admin, "Finance")
	role, err := f.svc.Role.Create(f.ctx, admin.UserId, &model.CreateRoleReq{Name: "Chair"})
	require.NoError(t, err)

	req := &model.SetRolePermissionsReq{
		RoleId: role.RoleId,
		Permissions: []model.CommitteePermissionReq{
			{CommitteeId: events.CommitteeId, Permission: "LEADER"},
			{CommitteeId: finance.CommitteeId, Permission: "MEMBER"},
		},
	}
	first, err := f.svc.Role.SetPermissions(f.ctx, admin.UserId, req)
	require.NoError(t, err)
	second, err := f.svc.Role.SetPermissions(f.ctx, admin.UserId, req)
	require.NoError(t, err)
	assert.ElementsMatch(t, first.Permissions, second.Permissions)
	assert.Len(t, second.Permissions, 2)

	detail, err := f.svc.Role.SetPermissions(f.ctx, admin.UserId, &model.SetRolePermissionsReq{
		RoleId:      role.RoleId,
		Permissions: []model.CommitteePermissionReq{{CommitteeId: finance.CommitteeId, Permission: "NONE"}},
	})
	require.NoError(t, err)
	require.Len(t, detail.Permissions, 1)
	assert.Equal(t, events.CommitteeId, detail.Permissions[0].CommitteeId)
	assert.Equal(t, "Events", detail.Permissions[0].CommitteeName)
}

func TestRoleService_NonAdminCannotManageRoles(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "admin@example.com")
	user := f.register(t, "user@example.com")
	f.org(t, admin)
	events := f.committee(t, admin, "Events")
	role := f.grant(t, admin, user, "Chair", events, "LEADER")

	_, err := f.svc.Role.Create(f.ctx, user.UserId, &model.CreateRoleReq{Name: "Other"})
	assert.ErrorIs(t, err, http.AdminRequired)

	err = f.svc.Role.Assign(f.ctx, user.UserId, &model.AssignRoleReq{UserId: user.UserId, RoleId: role.RoleId})
	assert.ErrorIs(t, err, http.AdminRequired)

	err = f.svc.Role.Assign(f.ctx, admin.UserId, &model.AssignRoleReq{UserId: user.UserId, RoleId: role.RoleId})
	assert.ErrorIs(t, err, http.RoleAlreadyAssigned)

	require.NoError(t, f.svc.Role.Unassign(f.ctx, admin.UserId, user.UserId, role.RoleId))
	err = f.svc.Role.Unassign(f.ctx, admin.UserId, user.UserId, role.RoleId)
	assert.ErrorIs(t, err, http.UserRoleNotExist)
}
