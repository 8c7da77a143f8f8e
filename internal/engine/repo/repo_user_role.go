package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
)

type IUserRoleRepository interface {
	Create(ctx context.Context, ur *model.UserRole) error
	// Delete reports whether an assignment was removed
	Delete(ctx context.Context, userId, roleId string) (bool, error)
	Exists(ctx context.Context, userId, roleId string) (bool, error)
	// ListRolesInOrg returns the roles the user holds inside one organization
	ListRolesInOrg(ctx context.Context, userId, orgId string) ([]*model.Role, error)
	ListRoles(ctx context.Context, userId string) ([]*model.Role, error)
	// InOrg reports whether the user holds any role of the organization
	InOrg(ctx context.Context, userId, orgId string) (bool, error)
}

type UserRoleRepo struct {
	db database.IDatabase
}

func NewUserRoleRepo(db database.IDatabase) IUserRoleRepository {
	return &UserRoleRepo{db: db}
}

func (urr *UserRoleRepo) Create(ctx context.Context, ur *model.UserRole) error {
	return urr.db.Database().WithContext(ctx).Create(ur).Error
}

func (urr *UserRoleRepo) Delete(ctx context.Context, userId, roleId string) (bool, error) {
	res := urr.db.Database().WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userId, roleId).
		Delete(&model.UserRole{})
	return res.RowsAffected > 0, res.Error
}

func (urr *UserRoleRepo) Exists(ctx context.Context, userId, roleId string) (bool, error) {
	return Exist(urr.db.Database().WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userId, roleId))
}

func (urr *UserRoleRepo) ListRolesInOrg(ctx context.Context, userId, orgId string) ([]*model.Role, error) {
	var roles []*model.Role
	err := urr.db.Database().WithContext(ctx).
		Joins("JOIN t_user_role ur ON ur.role_id = t_role.role_id").
		Where("ur.user_id = ? AND t_role.org_id = ?", userId, orgId).
		Order("t_role.name ASC").
		Find(&roles).Error
	return roles, err
}

func (urr *UserRoleRepo) ListRoles(ctx context.Context, userId string) ([]*model.Role, error) {
	var roles []*model.Role
	err := urr.db.Database().WithContext(ctx).
		Joins("JOIN t_user_role ur ON ur.role_id = t_role.role_id").
		Where("ur.user_id = ?", userId).
		Order("t_role.name ASC").
		Find(&roles).Error
	return roles, err
}

func (urr *UserRoleRepo) InOrg(ctx context.Context, userId, orgId string) (bool, error) {
	return Exist(urr.db.Database().WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN t_role r ON r.role_id = t_user_role.role_id").
		Where("t_user_role.user_id = ? AND r.org_id = ?", userId, orgId))
}
