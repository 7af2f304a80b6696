package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/activity"
	"crm-pulse/internal/service/customer"
	"crm-pulse/internal/service/helpers"
)

type CustomerHandler struct {
	customerService customer.Service
	activityService activity.Service
}

func NewCustomerHandler(customerService customer.Service, activityService activity.Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		activityService: activityService,
	}
}

func customerError(err error) error {
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		return middleware.NotFound("Customer not found")
	case errors.Is(err, customer.ErrNameRequired),
		errors.Is(err, helpers.ErrAssigneeNotInWorkspace):
		return middleware.BadRequest(err.Error())
	}
	return err
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.customerService.Create(c.Context(), identity, input)
	if err != nil {
		return customerError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customers, err := h.customerService.List(c.Context(), identity.WorkspaceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(customers)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuidParam(c, "id", "customer")
	if err != nil {
		return err
	}

	found, err := h.customerService.GetByID(c.Context(), identity.WorkspaceID, id)
	if err != nil {
		return customerError(err)
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuidParam(c, "id", "customer")
	if err != nil {
		return err
	}

	var input domain.UpdateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.customerService.Update(c.Context(), identity, id, input)
	if err != nil {
		return customerError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuidParam(c, "id", "customer")
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(c.Context(), identity, id); err != nil {
		return customerError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) ListActivities(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}

	limit, err := limitQuery(c)
	if err != nil {
		return err
	}

	activities, err := h.activityService.ListByCustomer(c.Context(), identity.WorkspaceID, customerID, limit)
	if err != nil {
		if errors.Is(err, activity.ErrCustomerNotFound) {
			return middleware.NotFound("Customer not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(activities)
}
