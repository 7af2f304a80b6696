package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/note"
)

type NoteHandler struct {
	noteService note.Service
}

func NewNoteHandler(noteService note.Service) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func noteError(err error) error {
	switch {
	case errors.Is(err, note.ErrCustomerNotFound):
		return middleware.NotFound("Customer not found")
	case errors.Is(err, note.ErrNoteNotFound):
		return middleware.NotFound("Note not found")
	case errors.Is(err, note.ErrBodyRequired):
		return middleware.BadRequest(err.Error())
	}
	return err
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}

	notes, err := h.noteService.ListByCustomer(c.Context(), identity.WorkspaceID, customerID)
	if err != nil {
		return noteError(err)
	}

	return c.Status(fiber.StatusOK).JSON(notes)
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}

	var input domain.NoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.noteService.Create(c.Context(), identity, customerID, input)
	if err != nil {
		return noteError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}
	noteID, err := uuidParam(c, "noteId", "note")
	if err != nil {
		return err
	}

	var input domain.NoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.noteService.Update(c.Context(), identity, customerID, noteID, input)
	if err != nil {
		return noteError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	customerID, err := uuidParam(c, "customerId", "customer")
	if err != nil {
		return err
	}
	noteID, err := uuidParam(c, "noteId", "note")
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Context(), identity, customerID, noteID); err != nil {
		return noteError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
