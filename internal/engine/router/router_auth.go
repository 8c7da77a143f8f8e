package router

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/register", rt.register)
		authGroup.Post("/login", rt.login)

		authGroup.Post("/logout", auth, rt.logout)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := rt.Services.Auth.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	c.Locals(constant.DETAIL, user)
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := rt.Services.Auth.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	c.Locals(constant.DETAIL, resp)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}
	if err := rt.Services.Auth.Logout(c.UserContext(), claims); err != nil {
		return err
	}
	c.Locals(constant.OPERATION, "")
	return nil
}
