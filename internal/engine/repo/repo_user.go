package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, userId string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email, excludeUserId string) (bool, error)
	// ListByOrg returns the organization admin and every user holding one of its roles
	ListByOrg(ctx context.Context, org *model.Organization) ([]*model.User, error)
	Update(ctx context.Context, userId string, updates map[string]any) error
	SetActive(ctx context.Context, userId string, active bool) error
}

type UserRepo struct {
	db database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{db: db}
}

func (ur *UserRepo) Create(ctx context.Context, u *model.User) error {
	return ur.db.Database().WithContext(ctx).Create(u).Error
}

func (ur *UserRepo) Get(ctx context.Context, userId string) (*model.User, error) {
	var u model.User
	err := ur.db.Database().WithContext(ctx).Where("user_id = ?", userId).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := ur.db.Database().WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) EmailTaken(ctx context.Context, email, excludeUserId string) (bool, error) {
	q := ur.db.Database().WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeUserId != "" {
		q = q.Where("user_id <> ?", excludeUserId)
	}
	return Exist(q)
}

func (ur *UserRepo) ListByOrg(ctx context.Context, org *model.Organization) ([]*model.User, error) {
	db := ur.db.Database().WithContext(ctx)
	members := db.Session(&gorm.Session{NewDB: true}).Table("t_user_role AS ur").
		Select("ur.user_id").
		Joins("JOIN t_role r ON r.role_id = ur.role_id").
		Where("r.org_id = ?", org.OrgId)

	var users []*model.User
	err := db.Where("user_id = ? OR user_id IN (?)", org.AdminUserId, members).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (ur *UserRepo) Update(ctx context.Context, userId string, updates map[string]any) error {
	return ur.db.Database().WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userId).
		Updates(updates).Error
}

func (ur *UserRepo) SetActive(ctx context.Context, userId string, active bool) error {
	return ur.db.Database().WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userId).
		Update("is_active", active).Error
}
