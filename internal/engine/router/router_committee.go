package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) committeeRouter(r fiber.Router, auth fiber.Handler) {
	committeeGroup := r.Group("/committees", auth)
	{
		committeeGroup.Get("/", rt.listCommittees)
		committeeGroup.Post("/", rt.createCommittee)
		committeeGroup.Get("/:id", rt.getCommittee)
		committeeGroup.Get("/:id/permissions", rt.committeeAccess)
		committeeGroup.Put("/:id", rt.updateCommittee)
		committeeGroup.Delete("/:id", rt.deleteCommittee)
	}
}

// listCommittees returns only committees the caller can see
func (rt *Router) listCommittees(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	views, err := rt.Services.Committee.List(c.UserContext(), userId)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, views)
	return nil
}

func (rt *Router) getCommittee(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	view, err := rt.Services.Committee.Get(c.UserContext(), userId, c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, view)
	return nil
}

// committeeAccess reports the caller's resolved level, used by clients to
// decide which controls to show
func (rt *Router) committeeAccess(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	access, err := rt.Services.Committee.Access(c.UserContext(), userId, c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, access)
	return nil
}

func (rt *Router) createCommittee(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateCommitteeReq
	if err := bind(c, &req); err != nil {
		return err
	}
	committee, err := rt.Services.Committee.Create(c.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, committee)
	return nil
}

func (rt *Router) updateCommittee(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	var req model.UpdateCommitteeReq
	if err := bind(c, &req); err != nil {
		return err
	}
	committee, err := rt.Services.Committee.Update(c.UserContext(), userId, c.Params("id"), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, committee)
	return nil
}

func (rt *Router) deleteCommittee(c *fiber.Ctx) error {
	userId, err := caller(c)
	if err != nil {
		return err
	}
	if err := rt.Services.Committee.Delete(c.UserContext(), userId, c.Params("id")); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}
