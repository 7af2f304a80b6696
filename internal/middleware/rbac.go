package middleware

import (
	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
)

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return Unauthorized("Unauthorized")
		}

		if !identity.HasAnyRole(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

// RequireWrite lets Admin and Sales through.
func RequireWrite() fiber.Handler {
	return RequireAnyRole(domain.RoleAdmin, domain.RoleSales)
}
