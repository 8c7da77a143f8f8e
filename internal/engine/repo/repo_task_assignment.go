package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
	"gorm.io/gorm"
)

type ITaskAssignmentRepository interface {
	ListUserIds(ctx context.Context, taskId string) ([]string, error)
	// ListByTasks groups assignee ids by task id
	ListByTasks(ctx context.Context, taskIds []string) (map[string][]string, error)
	// Replace makes userIds the exact assignee set of the task
	Replace(ctx context.Context, taskId string, userIds []string) error
}

type TaskAssignmentRepo struct {
	db database.IDatabase
}

func NewTaskAssignmentRepo(db database.IDatabase) ITaskAssignmentRepository {
	return &TaskAssignmentRepo{db: db}
}

func (tar *TaskAssignmentRepo) ListUserIds(ctx context.Context, taskId string) ([]string, error) {
	userIds := make([]string, 0)
	err := tar.db.Database().WithContext(ctx).Model(&model.TaskAssignment{}).
		Where("task_id = ?", taskId).
		Order("id ASC").
		Pluck("user_id", &userIds).Error
	return userIds, err
}

func (tar *TaskAssignmentRepo) ListByTasks(ctx context.Context, taskIds []string) (map[string][]string, error) {
	out := make(map[string][]string, len(taskIds))
	if len(taskIds) == 0 {
		return out, nil
	}
	var rows []*model.TaskAssignment
	err := tar.db.Database().WithContext(ctx).
		Where("task_id IN ?", taskIds).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.TaskId] = append(out[row.TaskId], row.UserId)
	}
	return out, nil
}

func (tar *TaskAssignmentRepo) Replace(ctx context.Context, taskId string, userIds []string) error {
	return tar.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskId).Delete(&model.TaskAssignment{}).Error; err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(userIds))
		rows := make([]*model.TaskAssignment, 0, len(userIds))
		for _, userId := range userIds {
			if _, dup := seen[userId]; dup {
				continue
			}
			seen[userId] = struct{}{}
			rows = append(rows, &model.TaskAssignment{TaskId: taskId, UserId: userId})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
