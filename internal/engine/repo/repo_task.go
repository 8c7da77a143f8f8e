package repo

import (
	"context"
	"database/sql"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

// boardOrder sorts tasks by column, then position, then insertion order
const boardOrder = "CASE status WHEN 'TODO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 WHEN 'DONE' THEN 2 ELSE 3 END ASC, position ASC, id ASC"

type ITaskRepository interface {
	Create(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, taskId string) (*model.Task, error)
	ListByCommittee(ctx context.Context, committeeId string) ([]*model.Task, error)
	// NextPosition returns one past the highest position in the column, 0 when empty
	NextPosition(ctx context.Context, committeeId string, status model.TaskStatus) (int, error)
	Update(ctx context.Context, taskId string, updates map[string]any) error
	// Delete removes the task with its assignments and comments
	Delete(ctx context.Context, taskId string) error
}

type TaskRepo struct {
	db database.IDatabase
}

func NewTaskRepo(db database.IDatabase) ITaskRepository {
	return &TaskRepo{db: db}
}

func (tr *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	return tr.db.Database().WithContext(ctx).Create(t).Error
}

func (tr *TaskRepo) Get(ctx context.Context, taskId string) (*model.Task, error) {
	var t model.Task
	if err := tr.db.Database().WithContext(ctx).Where("task_id = ?", taskId).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (tr *TaskRepo) ListByCommittee(ctx context.Context, committeeId string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := tr.db.Database().WithContext(ctx).
		Where("committee_id = ?", committeeId).
		Order(boardOrder).
		Find(&tasks).Error
	return tasks, err
}

func (tr *TaskRepo) NextPosition(ctx context.Context, committeeId string, status model.TaskStatus) (int, error) {
	var maxPos sql.NullInt64
	err := tr.db.Database().WithContext(ctx).Model(&model.Task{}).
		Where("committee_id = ? AND status = ?", committeeId, status).
		Select("MAX(position)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func (tr *TaskRepo) Update(ctx context.Context, taskId string, updates map[string]any) error {
	return tr.db.Database().WithContext(ctx).Model(&model.Task{}).
		Where("task_id = ?", taskId).
		Updates(updates).Error
}

func (tr *TaskRepo) Delete(ctx context.Context, taskId string) error {
	return tr.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskId).Delete(&model.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskId).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("task_id = ?", taskId).Delete(&model.Task{}).Error
	})
}
