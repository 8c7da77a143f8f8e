package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

type IRoleRepository interface {
	Create(ctx context.Context, r *model.Role) error
	Get(ctx context.Context, roleId string) (*model.Role, error)
	ListByOrg(ctx context.Context, orgId string) ([]*model.Role, error)
	NameTaken(ctx context.Context, orgId, name, excludeRoleId string) (bool, error)
	Update(ctx context.Context, roleId string, updates map[string]any) error
	// Delete removes the role with its committee grants and user assignments
	Delete(ctx context.Context, roleId string) error
}

type RoleRepo struct {
	db database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{db: db}
}

func (rr *RoleRepo) Create(ctx context.Context, r *model.Role) error {
	return rr.db.Database().WithContext(ctx).Create(r).Error
}

func (rr *RoleRepo) Get(ctx context.Context, roleId string) (*model.Role, error) {
	var r model.Role
	if err := rr.db.Database().WithContext(ctx).Where("role_id = ?", roleId).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *RoleRepo) ListByOrg(ctx context.Context, orgId string) ([]*model.Role, error) {
	var roles []*model.Role
	err := rr.db.Database().WithContext(ctx).
		Where("org_id = ?", orgId).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (rr *RoleRepo) NameTaken(ctx context.Context, orgId, name, excludeRoleId string) (bool, error) {
	q := rr.db.Database().WithContext(ctx).Model(&model.Role{}).Where("org_id = ? AND name = ?", orgId, name)
	if excludeRoleId != "" {
		q = q.Where("role_id <> ?", excludeRoleId)
	}
	return Exist(q)
}

func (rr *RoleRepo) Update(ctx context.Context, roleId string, updates map[string]any) error {
	return rr.db.Database().WithContext(ctx).Model(&model.Role{}).
		Where("role_id = ?", roleId).
		Updates(updates).Error
}

func (rr *RoleRepo) Delete(ctx context.Context, roleId string) error {
	return rr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleId).Delete(&model.RoleCommitteePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", roleId).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", roleId).Delete(&model.Role{}).Error
	})
}
