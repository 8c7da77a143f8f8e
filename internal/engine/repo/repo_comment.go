package repo

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/database"
)

type ICommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByTask(ctx context.Context, taskId string) ([]*model.Comment, error)
}

type CommentRepo struct {
	db database.IDatabase
}

func NewCommentRepo(db database.IDatabase) ICommentRepository {
	return &CommentRepo{db: db}
}

func (cr *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	return cr.db.Database().WithContext(ctx).Create(c).Error
}

func (cr *CommentRepo) ListByTask(ctx context.Context, taskId string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := cr.db.Database().WithContext(ctx).
		Where("task_id = ?", taskId).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
