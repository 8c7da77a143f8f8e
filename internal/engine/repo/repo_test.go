package repo

import (
	"context"
	"testing"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	manager, err := database.NewManager(database.Database{
		Driver: database.DriverSQLite,
		SQLite: database.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	db := database.NewDatabaseAdapter(manager)
	require.NoError(t, database.Migrate(db, model.Tables()...))
	return NewRepositories(db)
}

func seedBoard(t *testing.T, repos *Repositories) (*model.Role, *model.Committee) {
	t.Helper()
	ctx := context.Background()
	role := &model.Role{RoleId: "r1", OrgId: "o1", Name: "Chair"}
	committee := &model.Committee{CommitteeId: "c1", OrgId: "o1", Name: "Events"}
	require.NoError(t, repos.Role.Create(ctx, role))
	require.NoError(t, repos.Committee.Create(ctx, committee))
	return role, committee
}

func TestPermissionRepo_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	require.NoError(t, repos.Permission.Upsert(ctx, "r1", "c1", model.PermissionMember))
	require.NoError(t, repos.Permission.Upsert(ctx, "r1", "c1", model.PermissionMember))
	require.NoError(t, repos.Permission.Upsert(ctx, "r1", "c1", model.PermissionLeader))

	rows, err := repos.Permission.ListByRole(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.PermissionLeader, rows[0].Permission)

	require.NoError(t, repos.Permission.Delete(ctx, "r1", "c1"))
	rows, err = repos.Permission.ListByRole(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUserRoleRepo_ListRolesInOrg(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)
	require.NoError(t, repos.Role.Create(ctx, &model.Role{RoleId: "r2", OrgId: "o2", Name: "Chair"}))

	require.NoError(t, repos.UserRole.Create(ctx, &model.UserRole{UserId: "u1", RoleId: "r1"}))
	require.NoError(t, repos.UserRole.Create(ctx, &model.UserRole{UserId: "u1", RoleId: "r2"}))

	roles, err := repos.UserRole.ListRolesInOrg(ctx, "u1", "o1")
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "r1", roles[0].RoleId)

	all, err := repos.UserRole.ListRoles(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := repos.UserRole.Delete(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repos.UserRole.Delete(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTaskRepo_BoardOrderAndNextPosition(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	next, err := repos.Task.NextPosition(ctx, "c1", model.TaskStatusTodo)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	tasks := []*model.Task{
		{TaskId: "t1", CommitteeId: "c1", Title: "done", Status: model.TaskStatusDone, Position: 0, CreatedBy: "u1"},
		{TaskId: "t2", CommitteeId: "c1", Title: "todo b", Status: model.TaskStatusTodo, Position: 4, CreatedBy: "u1"},
		{TaskId: "t3", CommitteeId: "c1", Title: "todo a", Status: model.TaskStatusTodo, Position: 1, CreatedBy: "u1"},
		{TaskId: "t4", CommitteeId: "c1", Title: "doing", Status: model.TaskStatusInProgress, Position: 0, CreatedBy: "u1"},
		{TaskId: "t5", CommitteeId: "c1", Title: "todo dup", Status: model.TaskStatusTodo, Position: 4, CreatedBy: "u1"},
	}
	for _, task := range tasks {
		require.NoError(t, repos.Task.Create(ctx, task))
	}

	listed, err := repos.Task.ListByCommittee(ctx, "c1")
	require.NoError(t, err)
	var ids []string
	for _, task := range listed {
		ids = append(ids, task.TaskId)
	}
	assert.Equal(t, []string{"t3", "t2", "t5", "t4", "t1"}, ids)

	next, err = repos.Task.NextPosition(ctx, "c1", model.TaskStatusTodo)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}

func TestCommitteeRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	require.NoError(t, repos.Permission.Upsert(ctx, "r1", "c1", model.PermissionLeader))
	require.NoError(t, repos.Task.Create(ctx, &model.Task{TaskId: "t1", CommitteeId: "c1", Title: "x", Status: model.TaskStatusTodo, CreatedBy: "u1"}))
	require.NoError(t, repos.TaskAssignment.Replace(ctx, "t1", []string{"u1", "u2", "u1"}))
	require.NoError(t, repos.Comment.Create(ctx, &model.Comment{CommentId: "m1", TaskId: "t1", UserId: "u1", Content: "hi"}))

	assignees, err := repos.TaskAssignment.ListUserIds(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, assignees)

	require.NoError(t, repos.Committee.Delete(ctx, "c1"))

	_, err = repos.Committee.Get(ctx, "c1")
	assert.Error(t, err)
	_, err = repos.Task.Get(ctx, "t1")
	assert.Error(t, err)

	rows, err := repos.Permission.ListByRole(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, rows)

	comments, err := repos.Comment.ListByTask(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, comments)

	assignees, err = repos.TaskAssignment.ListUserIds(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, assignees)
}

func TestRoleRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	require.NoError(t, repos.Permission.Upsert(ctx, "r1", "c1", model.PermissionMember))
	require.NoError(t, repos.UserRole.Create(ctx, &model.UserRole{UserId: "u1", RoleId: "r1"}))

	require.NoError(t, repos.Role.Delete(ctx, "r1"))

	exists, err := repos.UserRole.Exists(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.False(t, exists)
	rows, err := repos.Permission.ListByRoles(ctx, []string{"r1"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositories_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Role.Update(ctx, "r1", map[string]any{"name": "Renamed"}); err != nil {
			return err
		}
		// duplicate committee id violates the unique index
		return tx.Committee.Create(ctx, &model.Committee{CommitteeId: "c1", OrgId: "o1", Name: "Other"})
	})
	require.Error(t, err)

	role, err := repos.Role.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Chair", role.Name)
}

func TestNameTaken(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	seedBoard(t, repos)

	taken, err := repos.Role.NameTaken(ctx, "o1", "Chair", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.Role.NameTaken(ctx, "o1", "Chair", "r1")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repos.Committee.NameTaken(ctx, "o2", "Events", "")
	require.NoError(t, err)
	assert.False(t, taken)
}
