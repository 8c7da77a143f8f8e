package service

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/id"
	pkgerrors "github.com/pkg/errors"
)

type CommentService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewCommentService(repos *repo.Repositories, permission *PermissionService) *CommentService {
	return &CommentService{repos: repos, permission: permission}
}

func (cs *CommentService) Create(ctx context.Context, userId, taskId string, req *model.CreateCommentReq) (*model.Comment, error) {
	if err := cs.requireTask(ctx, userId, taskId); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		CommentId: id.GetUUIDWithoutDashes(),
		TaskId:    taskId,
		UserId:    userId,
		Content:   req.Content,
	}
	if err := cs.repos.Comment.Create(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(err, "create comment")
	}
	return comment, nil
}

func (cs *CommentService) List(ctx context.Context, userId, taskId string) ([]*model.Comment, error) {
	if err := cs.requireTask(ctx, userId, taskId); err != nil {
		return nil, err
	}
	comments, err := cs.repos.Comment.ListByTask(ctx, taskId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list comments")
	}
	return comments, nil
}

func (cs *CommentService) requireTask(ctx context.Context, userId, taskId string) error {
	task, err := cs.repos.Task.Get(ctx, taskId)
	if err != nil {
		return dbError(err, http.PermissionDenied, nil, "load task")
	}
	_, err = cs.permission.Require(ctx, userId, task.CommitteeId, RequireMember)
	return err
}
