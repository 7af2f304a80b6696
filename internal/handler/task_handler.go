package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/helpers"
	"crm-pulse/internal/service/task"
)

type TaskHandler struct {
	taskService task.Service
}

func NewTaskHandler(taskService task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func taskError(err error) error {
	switch {
	case errors.Is(err, task.ErrCustomerNotFound):
		return middleware.NotFound("Customer not found")
	case errors.Is(err, task.ErrTaskNotFound):
		return middleware.NotFound("Task not found")
	case errors.Is(err, task.ErrTitleRequired),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, helpers.ErrAssigneeNotInWorkspace):
		return middleware.BadRequest(err.Error())
	}
	return err
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByCustomer(c.Context(), identity.WorkspaceID, customerID)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}

	var input domain.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.taskService.Create(c.Context(), identity, customerID, input)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}
	taskID, err := uuidParam(c, "taskId", "task")
	if err != nil {
		return err
	}

	var input domain.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.taskService.Update(c.Context(), identity, customerID, taskID, input)
	if err != nil {
		return taskError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
