package middleware

import (
	"context"
	"strings"

	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
)

// Authenticator validates a bearer token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.AuthClaims, error)
}

// AuthorizationMiddleware 认证中间件
// Rejects requests without a live session and stores the claims in
// c.Locals(constant.CLAIMS).
func AuthorizationMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get(fiber.HeaderAuthorization)
		if aToken == "" {
			return http.TokenBeEmpty
		}

		parts := strings.SplitN(aToken, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return http.AuthorizationIncorrect
		}

		claims, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(constant.CLAIMS, claims)
		return c.Next()
	}
}

// GetClaims returns the caller's claims set by AuthorizationMiddleware
func GetClaims(c *fiber.Ctx) (*jwt.AuthClaims, error) {
	claims, ok := c.Locals(constant.CLAIMS).(*jwt.AuthClaims)
	if !ok || claims == nil {
		return nil, http.Unauthorized
	}
	return claims, nil
}
