package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) organizationRouter(r fiber.Router, auth fiber.Handler) {
	orgGroup := r.Group("/organizations", auth)
	{
		orgGroup.Get("/", rt.listOrganizations)
		orgGroup.Post("/", rt.createOrganization)
		orgGroup.Get("/me", rt.myOrganization)
		orgGroup.Get("/:id", rt.getOrganization)
		orgGroup.Put("/:id", rt.updateOrganization)
	}
}

func (rt *Router) listOrganizations(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	orgs, err := rt.Services.Organization.List(c.UserContext(), userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, orgs)
	return nil
}

func (rt *Router) createOrganization(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateOrganizationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	org, err := rt.Services.Organization.Create(c.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, org)
	return nil
}

func (rt *Router) myOrganization(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	org, err := rt.Services.Organization.Mine(c.UserContext(), userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, org)
	return nil
}

func (rt *Router) getOrganization(c *fiber.Ctx) error {
	org, err := rt.Services.Organization.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, org)
	return nil
}

func (rt *Router) updateOrganization(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.UpdateOrganizationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	org, err := rt.Services.Organization.Update(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, org)
	return nil
}
