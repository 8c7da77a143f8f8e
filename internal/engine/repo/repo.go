package repo

import (
	"context"

	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

type Repositories struct {
	db             database.IDatabase
	User           IUserRepository
	Organization   IOrganizationRepository
	Role           IRoleRepository
	Committee      ICommitteeRepository
	Permission     IPermissionRepository
	UserRole       IUserRoleRepository
	Task           ITaskRepository
	TaskAssignment ITaskAssignmentRepository
	Comment        ICommentRepository
}

func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		db:             db,
		User:           NewUserRepo(db),
		Organization:   NewOrganizationRepo(db),
		Role:           NewRoleRepo(db),
		Committee:      NewCommitteeRepo(db),
		Permission:     NewPermissionRepo(db),
		UserRole:       NewUserRoleRepo(db),
		Task:           NewTaskRepo(db),
		TaskAssignment: NewTaskAssignmentRepo(db),
		Comment:        NewCommentRepo(db),
	}
}

func (r *Repositories) GetDB() database.IDatabase {
	return r.db
}

// Transaction runs fn with repositories bound to a single transaction.
// fn must only use the repositories it is given.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(database.NewGormDB(tx)))
	})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func Exist(tx *gorm.DB) (bool, error) {
	count, err := Count(tx.Limit(1))
	return count > 0, err
}
