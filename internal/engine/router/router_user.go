package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/4 10:47
 * @file: router_user.go
 * @description: user router
 */

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/users", auth)
	{
		userGroup.Get("/", rt.listUsers)
		userGroup.Get("/me", rt.getMe)
		userGroup.Put("/me", rt.updateMe)
		userGroup.Get("/:id", rt.getUser)
		userGroup.Put("/:id", rt.updateUser)
		userGroup.Post("/:id/deactivate", rt.deactivateUser)
		userGroup.Post("/:id/activate", rt.activateUser)
	}
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	users, err := rt.Services.User.List(c.UserContext(), userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, users)
	return nil
}

func (rt *Router) getMe(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	return rt.sendUser(c, userId, userId)
}

func (rt *Router) getUser(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	return rt.sendUser(c, userId, c.Params("id"))
}

func (rt *Router) sendUser(c *fiber.Ctx, callerId, userId string) error {
	user, err := rt.Services.User.Get(c.UserContext(), callerId, userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, user)
	return nil
}

func (rt *Router) updateMe(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	return rt.saveUser(c, userId, userId)
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	return rt.saveUser(c, userId, c.Params("id"))
}

func (rt *Router) saveUser(c *fiber.Ctx, callerId, userId string) error {
	var req model.UpdateUserReq
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := rt.Services.User.Update(c.UserContext(), callerId, userId, &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, user)
	return nil
}

func (rt *Router) deactivateUser(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.User.Deactivate(c.UserContext(), userId, c.Params("id")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}

func (rt *Router) activateUser(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.User.Activate(c.UserContext(), userId, c.Params("id")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}
