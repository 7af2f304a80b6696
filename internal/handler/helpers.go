package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
)

func currentIdentity(c *fiber.Ctx) (*domain.Identity, error) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return nil, middleware.Unauthorized("Unauthorized")
	}
	return identity, nil
}

func uuidParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " id")
	}
	return id, nil
}

// limitQuery returns 0 when the limit is absent so the service applies its
// default. Non-numeric values are rejected.
func limitQuery(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.BadRequest("Invalid limit")
	}
	return n, nil
}

func boolQuery(c *fiber.Ctx, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
