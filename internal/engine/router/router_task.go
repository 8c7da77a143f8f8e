package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: router_task.go
 * @description: committee boards, tasks and comments
 */

func (rt *Router) taskRouter(r fiber.Router, auth fiber.Handler) {
	taskGroup := r.Group("/tasks", auth)
	{
		taskGroup.Get("/committee/:committeeId", middleware.RequireCommitteeMember(rt.Services.Permission), rt.listCommitteeTasks)
		taskGroup.Post("/", rt.createTask)

		taskGroup.Get("/:id", rt.getTask)
		taskGroup.Put("/:id", rt.updateTask)
		taskGroup.Patch("/:id/status", rt.moveTask)
		taskGroup.Delete("/:id", rt.deleteTask)

		taskGroup.Get("/:id/comments", rt.listComments)
		taskGroup.Post("/:id/comments", rt.createComment)
	}
}

func (rt *Router) listCommitteeTasks(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	tasks, err := rt.Services.Task.ListByCommittee(c.UserContext(), userId, c.Params("committeeId"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, tasks)
	return nil
}

func (rt *Router) getTask(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	task, err := rt.Services.Task.Get(c.UserContext(), userId, c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, task)
	return nil
}

func (rt *Router) createTask(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateTaskReq
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := rt.Services.Task.Create(c.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, task)
	return nil
}

func (rt *Router) updateTask(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.UpdateTaskReq
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := rt.Services.Task.Update(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, task)
	return nil
}

func (rt *Router) moveTask(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.MoveTaskReq
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := rt.Services.Task.Move(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, task)
	return nil
}

func (rt *Router) deleteTask(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.Task.Delete(c.UserContext(), userId, c.Params("id")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}

func (rt *Router) listComments(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	comments, err := rt.Services.Comment.List(c.UserContext(), userId, c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, comments)
	return nil
}

func (rt *Router) createComment(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateCommentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := rt.Services.Comment.Create(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, comment)
	return nil
}
