package router

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/guild/internal/engine/service"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/http/middleware"
	"github.com/go-arcade/guild/pkg/metrics"
	"github.com/go-arcade/guild/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:48
 * @file: router.go
 * @description: setup router
 */

type Router struct {
	Http     *http.Http
	Services *service.Services
}

func NewRouter(httpConf *http.Http, services *service.Services) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Guild",
		DisableStartupMessage: rt.Http.Mode == "release",
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit,
		ErrorHandler:          http.ErrorHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.TraceMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.CorsMiddleware(rt.Http.AllowOrigins),
		middleware.MetricsMiddleware(),
		middleware.UnifiedResponseMiddleware(),
	)

	if rt.Http.PProf {
		rt.debugRouter(app.Group("/debug/pprof"))
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	auth := middleware.AuthorizationMiddleware(rt.Services.Auth)

	rt.authRouter(app, auth)
	rt.organizationRouter(app, auth)
	rt.roleRouter(app, auth)
	rt.committeeRouter(app, auth)
	rt.taskRouter(app, auth)
	rt.userRouter(app, auth)

	// must stay after every route
	app.Use(func(c *fiber.Ctx) error {
		return http.NotFound.WithMsg("request path not found")
	})

	return app
}

// bind parses and validates a JSON body into out
func bind(c *fiber.Ctx, out any) error {
	return http.BindJSON(c, out)
}

// caller returns the authenticated user's id
func caller(c *fiber.Ctx) (string, error) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return "", err
	}
	return claims.UserId, nil
}
