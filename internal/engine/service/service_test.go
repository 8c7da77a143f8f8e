package service

import (
	"context"
	"testing"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	repos *repo.Repositories
	svc   *Services
	cache *cache.MemoryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	manager, err := database.NewManager(database.Database{
		Driver: database.DriverSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	db := database.NewDatabaseAdapter(manager)
	require.NoError(t, database.Migrate(db, model.Tables()...))

	repos := repo.NewRepositories(db)
	mc := cache.NewMemoryCache()
	auth := http.Auth{SecretKey: "test-secret", AccessExpire: 60}
	return &fixture{
		ctx:   context.Background(),
		repos: repos,
		svc:   NewServices(auth, repos, cache.NewSessionStore(mc, "")),
		cache: mc,
	}
}

func (f *fixture) register(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := f.svc.Auth.Register(f.ctx, &model.RegisterReq{Email: email, Password: "secret123", Name: email})
	require.NoError(t, err)
	return u
}

func (f *fixture) org(t *testing.T, admin *model.User) *model.Organization {
	t.Helper()
	org, err := f.svc.Organization.Create(f.ctx, admin.UserId, &model.CreateOrganizationReq{Name: "Guild of " + admin.Name})
	require.NoError(t, err)
	return org
}

func (f *fixture) committee(t *testing.T, admin *model.User, name string) *model.Committee {
	t.Helper()
	c, err := f.svc.Committee.Create(f.ctx, admin.UserId, &model.CreateCommitteeReq{Name: name})
	require.NoError(t, err)
	return c
}

// grant creates a role holding level on committee and assigns it to user
func (f *fixture) grant(t *testing.T, admin, user *model.User, roleName string, committee *model.Committee, level string) *model.Role {
	t.Helper()
	role, err := f.svc.Role.Create(f.ctx, admin.UserId, &model.CreateRoleReq{Name: roleName})
	require.NoError(t, err)
	_, err = f.svc.Role.SetPermissions(f.ctx, admin.UserId, &model.SetRolePermissionsReq{
		RoleId:      role.RoleId,
		Permissions: []model.CommitteePermissionReq{{CommitteeId: committee.CommitteeId, Permission: level}},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Role.Assign(f.ctx, admin.UserId, &model.AssignRoleReq{UserId: user.UserId, RoleId: role.RoleId}))
	return role
}
