package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/roles", auth)
	{
		roleGroup.Get("/", rt.listRoles)
		roleGroup.Post("/", rt.createRole)

		// assignment and grants are registered ahead of /:id
		roleGroup.Post("/assign", rt.assignRole)
		roleGroup.Delete("/assign/:userId/:roleId", rt.unassignRole)
		roleGroup.Post("/permissions", rt.setRolePermissions)

		roleGroup.Get("/:id", rt.getRole)
		roleGroup.Put("/:id", rt.updateRole)
		roleGroup.Delete("/:id", rt.deleteRole)
	}
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	roles, err := rt.Services.Role.List(c.UserContext(), userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, roles)
	return nil
}

func (rt *Router) getRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	role, err := rt.Services.Role.Get(c.UserContext(), userId, c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, role)
	return nil
}

func (rt *Router) createRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateRoleReq
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := rt.Services.Role.Create(c.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, role)
	return nil
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.UpdateRoleReq
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := rt.Services.Role.Update(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, role)
	return nil
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.Role.Delete(c.UserContext(), userId, c.Params("id")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}

func (rt *Router) assignRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.AssignRoleReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := rt.Services.Role.Assign(c.UserContext(), userId, &req); err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.OPERATION, "")
	return nil
}

func (rt *Router) unassignRole(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.Role.Unassign(c.UserContext(), userId, c.Params("userId"), c.Params("roleId")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}

func (rt *Router) setRolePermissions(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.SetRolePermissionsReq
	if err := bind(c, &req); err != nil {
		return err
	}
	detail, err := rt.Services.Role.SetPermissions(c.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, detail)
	return nil
}
