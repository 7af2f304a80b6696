package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"crm-pulse/internal/domain"
)

const (
	IdentityContextKey = "identity"
	TokenContextKey    = "token"
)

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthRequired resolves the bearer token to an identity. Missing, malformed,
// revoked and expired tokens all get the same 401.
func AuthRequired(sessions TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return Unauthorized("Unauthorized")
		}

		identity, err := sessions.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		if identity == nil {
			return Unauthorized("Unauthorized")
		}

		c.Locals(IdentityContextKey, identity)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}

func BearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func GetIdentity(c *fiber.Ctx) *domain.Identity {
	identity, ok := c.Locals(IdentityContextKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	identity := GetIdentity(c)
	if identity == nil {
		return uuid.Nil
	}
	return identity.UserID
}

func GetToken(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenContextKey).(string)
	return token
}
