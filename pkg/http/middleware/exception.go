package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 异常中间件
// Recovers a panic into a 500 response. The panic value never reaches the
// client.
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered",
				"method", c.Method(),
				"path", c.Path(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			err = http.WithRepErr(c, http.InternalError.Status, http.InternalError.Code, http.InternalError.Msg)
		}
	}()

	return c.Next()
}
