package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
)

type IOrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	Get(ctx context.Context, orgId string) (*model.Organization, error)
	GetByAdmin(ctx context.Context, adminUserId string) (*model.Organization, error)
	ExistsForAdmin(ctx context.Context, adminUserId string) (bool, error)
	Update(ctx context.Context, orgId string, updates map[string]any) error
}

type OrganizationRepo struct {
	db database.IDatabase
}

func NewOrganizationRepo(db database.IDatabase) IOrganizationRepository {
	return &OrganizationRepo{db: db}
}

func (or *OrganizationRepo) Create(ctx context.Context, org *model.Organization) error {
	return or.db.Database().WithContext(ctx).Create(org).Error
}

func (or *OrganizationRepo) Get(ctx context.Context, orgId string) (*model.Organization, error) {
	var org model.Organization
	if err := or.db.Database().WithContext(ctx).Where("org_id = ?", orgId).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (or *OrganizationRepo) GetByAdmin(ctx context.Context, adminUserId string) (*model.Organization, error) {
	var org model.Organization
	if err := or.db.Database().WithContext(ctx).Where("admin_user_id = ?", adminUserId).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (or *OrganizationRepo) ExistsForAdmin(ctx context.Context, adminUserId string) (bool, error) {
	return Exist(or.db.Database().WithContext(ctx).Model(&model.Organization{}).Where("admin_user_id = ?", adminUserId))
}

func (or *OrganizationRepo) Update(ctx context.Context, orgId string, updates map[string]any) error {
	return or.db.Database().WithContext(ctx).Model(&model.Organization{}).
		Where("org_id = ?", orgId).
		Updates(updates).Error
}
