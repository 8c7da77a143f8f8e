package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm/clause"
)

// IPermissionRepository stores role to committee grants
type IPermissionRepository interface {
	// Upsert writes the level for (role, committee), replacing any previous one
	Upsert(ctx context.Context, roleId, committeeId string, level model.PermissionLevel) error
	Delete(ctx context.Context, roleId, committeeId string) error
	ListByRole(ctx context.Context, roleId string) ([]*model.RoleCommitteePermission, error)
	ListByRoles(ctx context.Context, roleIds []string) ([]*model.RoleCommitteePermission, error)
	ListByRolesAndCommittee(ctx context.Context, roleIds []string, committeeId string) ([]*model.RoleCommitteePermission, error)
}

type PermissionRepo struct {
	db database.IDatabase
}

func NewPermissionRepo(db database.IDatabase) IPermissionRepository {
	return &PermissionRepo{db: db}
}

func (pr *PermissionRepo) Upsert(ctx context.Context, roleId, committeeId string, level model.PermissionLevel) error {
	row := &model.RoleCommitteePermission{
		RoleId:      roleId,
		CommitteeId: committeeId,
		Permission:  level,
	}
	return pr.db.Database().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}, {Name: "committee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission", "updated_at"}),
	}).Create(row).Error
}

func (pr *PermissionRepo) Delete(ctx context.Context, roleId, committeeId string) error {
	return pr.db.Database().WithContext(ctx).
		Where("role_id = ? AND committee_id = ?", roleId, committeeId).
		Delete(&model.RoleCommitteePermission{}).Error
}

func (pr *PermissionRepo) ListByRole(ctx context.Context, roleId string) ([]*model.RoleCommitteePermission, error) {
	var rows []*model.RoleCommitteePermission
	err := pr.db.Database().WithContext(ctx).
		Where("role_id = ?", roleId).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (pr *PermissionRepo) ListByRoles(ctx context.Context, roleIds []string) ([]*model.RoleCommitteePermission, error) {
	var rows []*model.RoleCommitteePermission
	if len(roleIds) == 0 {
		return rows, nil
	}
	err := pr.db.Database().WithContext(ctx).
		Where("role_id IN ?", roleIds).
		Find(&rows).Error
	return rows, err
}

func (pr *PermissionRepo) ListByRolesAndCommittee(ctx context.Context, roleIds []string, committeeId string) ([]*model.RoleCommitteePermission, error) {
	var rows []*model.RoleCommitteePermission
	if len(roleIds) == 0 {
		return rows, nil
	}
	err := pr.db.Database().WithContext(ctx).
		Where("role_id IN ? AND committee_id = ?", roleIds, committeeId).
		Find(&rows).Error
	return rows, err
}
