package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

type ICommitteeRepository interface {
	Create(ctx context.Context, c *model.Committee) error
	Get(ctx context.Context, committeeId string) (*model.Committee, error)
	ListByOrg(ctx context.Context, orgId string) ([]*model.Committee, error)
	ListByIds(ctx context.Context, committeeIds []string) ([]*model.Committee, error)
	NameTaken(ctx context.Context, orgId, name, excludeCommitteeId string) (bool, error)
	Update(ctx context.Context, committeeId string, updates map[string]any) error
	// Delete removes the committee, its grants and its tasks with their
	// assignments and comments
	Delete(ctx context.Context, committeeId string) error
}

type CommitteeRepo struct {
	db database.IDatabase
}

func NewCommitteeRepo(db database.IDatabase) ICommitteeRepository {
	return &CommitteeRepo{db: db}
}

func (cr *CommitteeRepo) Create(ctx context.Context, c *model.Committee) error {
	return cr.db.Database().WithContext(ctx).Create(c).Error
}

func (cr *CommitteeRepo) Get(ctx context.Context, committeeId string) (*model.Committee, error) {
	var c model.Committee
	if err := cr.db.Database().WithContext(ctx).Where("committee_id = ?", committeeId).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (cr *CommitteeRepo) ListByOrg(ctx context.Context, orgId string) ([]*model.Committee, error) {
	var committees []*model.Committee
	err := cr.db.Database().WithContext(ctx).
		Where("org_id = ?", orgId).
		Order("name ASC").
		Find(&committees).Error
	return committees, err
}

func (cr *CommitteeRepo) ListByIds(ctx context.Context, committeeIds []string) ([]*model.Committee, error) {
	var committees []*model.Committee
	if len(committeeIds) == 0 {
		return committees, nil
	}
	err := cr.db.Database().WithContext(ctx).
		Where("committee_id IN ?", committeeIds).
		Order("name ASC").
		Find(&committees).Error
	return committees, err
}

func (cr *CommitteeRepo) NameTaken(ctx context.Context, orgId, name, excludeCommitteeId string) (bool, error) {
	q := cr.db.Database().WithContext(ctx).Model(&model.Committee{}).Where("org_id = ? AND name = ?", orgId, name)
	if excludeCommitteeId != "" {
		q = q.Where("committee_id <> ?", excludeCommitteeId)
	}
	return Exist(q)
}

func (cr *CommitteeRepo) Update(ctx context.Context, committeeId string, updates map[string]any) error {
	return cr.db.Database().WithContext(ctx).Model(&model.Committee{}).
		Where("committee_id = ?", committeeId).
		Updates(updates).Error
}

func (cr *CommitteeRepo) Delete(ctx context.Context, committeeId string) error {
	return cr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIds []string
		if err := tx.Model(&model.Task{}).Where("committee_id = ?", committeeId).Pluck("task_id", &taskIds).Error; err != nil {
			return err
		}
		if len(taskIds) > 0 {
			if err := tx.Where("task_id IN ?", taskIds).Delete(&model.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIds).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIds).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("committee_id = ?", committeeId).Delete(&model.RoleCommitteePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("committee_id = ?", committeeId).Delete(&model.Committee{}).Error
	})
}
