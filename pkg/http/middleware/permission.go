package middleware

import (
	"github.com/go-arcade/guild/internal/engine/constant"
	"github.com/go-arcade/guild/internal/engine/service"
	"github.com/gofiber/fiber/v2"
)

/**
 * @file: permission.go
 * @description: committee permission guard
 */

// CommitteeGuard resolves the caller against the committee named by a route
// parameter and stops the request unless req is met. The decision is kept in
// c.Locals(constant.DECISION) for the handler.
func CommitteeGuard(perm *service.PermissionService, req service.Requirement, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := GetClaims(c)
		if err != nil {
			return err
		}
		d, err := perm.Require(c.UserContext(), claims.UserId, c.Params(param), req)
		if err != nil {
			return err
		}
		c.Locals(constant.DECISION, d)
		return c.Next()
	}
}

func RequireCommitteeMember(perm *service.PermissionService) fiber.Handler {
	return CommitteeGuard(perm, service.RequireMember, "committeeId")
}

func RequireCommitteeLeader(perm *service.PermissionService) fiber.Handler {
	return CommitteeGuard(perm, service.RequireLeader, "committeeId")
}
