package middleware

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	httpx "github.com/go-arcade/guild/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(constant.DETAIL, value) 用于设置响应数据
// c.Locals(constant.OPERATION, "") marks a success without data
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		if detail := c.Locals(constant.DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}
		if c.Locals(constant.OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
