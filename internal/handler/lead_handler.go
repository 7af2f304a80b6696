package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/lead"
)

type LeadHandler struct {
	leadService lead.Service
}

func NewLeadHandler(leadService lead.Service) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func leadError(err error) error {
	switch {
	case errors.Is(err, lead.ErrCustomerNotFound):
		return middleware.NotFound("Customer not found")
	case errors.Is(err, lead.ErrLeadNotFound):
		return middleware.NotFound("Lead not found")
	case errors.Is(err, lead.ErrInvalidStage),
		errors.Is(err, lead.ErrInvalidDealValue):
		return middleware.BadRequest(err.Error())
	}
	return err
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	leads, err := h.leadService.List(c.Context(), identity.WorkspaceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(leads)
}

func (h *LeadHandler) Convert(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuidParam(c, "id", "customer")
	if err != nil {
		return err
	}

	var input domain.ConvertLeadInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	converted, err := h.leadService.Convert(c.Context(), identity, id, input)
	if err != nil {
		return leadError(err)
	}

	return c.Status(fiber.StatusOK).JSON(converted)
}

func (h *LeadHandler) UpdateStage(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuidParam(c, "id", "lead")
	if err != nil {
		return err
	}

	var input domain.UpdateLeadStageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.leadService.UpdateStage(c.Context(), identity, id, input)
	if err != nil {
		return leadError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
