package service

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/id"
	pkgerrors "github.com/pkg/errors"
)

// TaskService manages committee boards. Positions supplied by callers are
// stored as given; other tasks are never renumbered.
type TaskService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewTaskService(repos *repo.Repositories, permission *PermissionService) *TaskService {
	return &TaskService{repos: repos, permission: permission}
}

func (ts *TaskService) ListByCommittee(ctx context.Context, userId, committeeId string) ([]*model.TaskDetail, error) {
	if _, err := ts.permission.Require(ctx, userId, committeeId, RequireMember); err != nil {
		return nil, err
	}
	tasks, err := ts.repos.Task.ListByCommittee(ctx, committeeId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list tasks")
	}
	taskIds := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIds = append(taskIds, t.TaskId)
	}
	assignees, err := ts.repos.TaskAssignment.ListByTasks(ctx, taskIds)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list assignees")
	}
	details := make([]*model.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		ids := assignees[t.TaskId]
		if ids == nil {
			ids = []string{}
		}
		details = append(details, &model.TaskDetail{Task: t, AssigneeIds: ids})
	}
	return details, nil
}

func (ts *TaskService) Get(ctx context.Context, userId, taskId string) (*model.TaskDetail, error) {
	task, err := ts.loadFor(ctx, userId, taskId, RequireMember)
	if err != nil {
		return nil, err
	}
	return ts.detail(ctx, ts.repos, task)
}

// Create adds a task. Without a position it goes to the end of its column.
func (ts *TaskService) Create(ctx context.Context, userId string, req *model.CreateTaskReq) (*model.TaskDetail, error) {
	if _, err := ts.permission.Require(ctx, userId, req.CommitteeId, RequireLeader); err != nil {
		return nil, err
	}
	if err := ts.checkAssignees(ctx, req.AssigneeIds); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	task := &model.Task{
		TaskId:      id.GetUUIDWithoutDashes(),
		CommitteeId: req.CommitteeId,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		CreatedBy:   userId,
	}

	var out *model.TaskDetail
	err := ts.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		if req.Position != nil {
			task.Position = *req.Position
		} else {
			next, err := tx.Task.NextPosition(ctx, task.CommitteeId, task.Status)
			if err != nil {
				return err
			}
			task.Position = next
		}
		if err := tx.Task.Create(ctx, task); err != nil {
			return err
		}
		if len(req.AssigneeIds) > 0 {
			if err := tx.TaskAssignment.Replace(ctx, task.TaskId, req.AssigneeIds); err != nil {
				return err
			}
		}
		var err error
		out, err = ts.detail(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, dbError(err, nil, nil, "create task")
	}
	return out, nil
}

// Update is a full edit. Field changes and the assignee replacement commit
// together.
func (ts *TaskService) Update(ctx context.Context, userId, taskId string, req *model.UpdateTaskReq) (*model.TaskDetail, error) {
	task, err := ts.loadFor(ctx, userId, taskId, RequireLeader)
	if err != nil {
		return nil, err
	}
	if req.AssigneeIds != nil {
		if err := ts.checkAssignees(ctx, *req.AssigneeIds); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}

	var out *model.TaskDetail
	err = ts.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		if req.Status != nil || req.Position != nil {
			status := task.Status
			if req.Status != nil {
				status = *req.Status
			}
			position, err := ts.placement(ctx, tx, task, status, req.Position)
			if err != nil {
				return err
			}
			updates["status"] = status
			updates["position"] = position
		}
		if len(updates) > 0 {
			if err := tx.Task.Update(ctx, taskId, updates); err != nil {
				return err
			}
		}
		if req.AssigneeIds != nil {
			if err := tx.TaskAssignment.Replace(ctx, taskId, *req.AssigneeIds); err != nil {
				return err
			}
		}
		updated, err := tx.Task.Get(ctx, taskId)
		if err != nil {
			return err
		}
		out, err = ts.detail(ctx, tx, updated)
		return err
	})
	if err != nil {
		return nil, dbError(err, http.TaskNotExist, nil, "update task")
	}
	return out, nil
}

// Move changes a task's column. Any column may move to any other.
func (ts *TaskService) Move(ctx context.Context, userId, taskId string, req *model.MoveTaskReq) (*model.TaskDetail, error) {
	task, err := ts.loadFor(ctx, userId, taskId, RequireMember)
	if err != nil {
		return nil, err
	}
	var out *model.TaskDetail
	err = ts.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		position, err := ts.placement(ctx, tx, task, req.Status, req.Position)
		if err != nil {
			return err
		}
		if err := tx.Task.Update(ctx, taskId, map[string]any{
			"status":   req.Status,
			"position": position,
		}); err != nil {
			return err
		}
		moved, err := tx.Task.Get(ctx, taskId)
		if err != nil {
			return err
		}
		out, err = ts.detail(ctx, tx, moved)
		return err
	})
	if err != nil {
		return nil, dbError(err, http.TaskNotExist, nil, "move task")
	}
	return out, nil
}

func (ts *TaskService) Delete(ctx context.Context, userId, taskId string) error {
	if _, err := ts.loadFor(ctx, userId, taskId, RequireLeader); err != nil {
		return err
	}
	if err := ts.repos.Task.Delete(ctx, taskId); err != nil {
		return pkgerrors.Wrap(err, "delete task")
	}
	return nil
}

// placement picks the stored position for a task landing in status. An
// explicit position wins. Staying in the same column keeps the current
// position; entering a new column appends.
func (ts *TaskService) placement(ctx context.Context, tx *repo.Repositories, task *model.Task, status model.TaskStatus, position *int) (int, error) {
	if position != nil {
		return *position, nil
	}
	if status == task.Status {
		return task.Position, nil
	}
	return tx.Task.NextPosition(ctx, task.CommitteeId, status)
}

// loadFor fetches the task and checks the caller against its committee. An
// unknown task is denied like a task the caller cannot see.
func (ts *TaskService) loadFor(ctx context.Context, userId, taskId string, req Requirement) (*model.Task, error) {
	task, err := ts.repos.Task.Get(ctx, taskId)
	if err != nil {
		return nil, dbError(err, http.PermissionDenied, nil, "load task")
	}
	if _, err := ts.permission.Require(ctx, userId, task.CommitteeId, req); err != nil {
		return nil, err
	}
	return task, nil
}

func (ts *TaskService) checkAssignees(ctx context.Context, userIds []string) error {
	for _, userId := range userIds {
		if _, err := ts.repos.User.Get(ctx, userId); err != nil {
			if isNotFound(err) {
				return http.UserNotExist.WithMsg("Assignee %s does not exist", userId)
			}
			return pkgerrors.Wrap(err, "load assignee")
		}
	}
	return nil
}

func (ts *TaskService) detail(ctx context.Context, repos *repo.Repositories, task *model.Task) (*model.TaskDetail, error) {
	assignees, err := repos.TaskAssignment.ListUserIds(ctx, task.TaskId)
	if err != nil {
		return nil, err
	}
	return &model.TaskDetail{Task: task, AssigneeIds: assignees}, nil
}
