package handler

import (
	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	limit, err := limitQuery(c)
	if err != nil {
		return err
	}

	notifications, err := h.notifService.List(c.Context(), identity.UserID, boolQuery(c, "unread_only"), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread": count,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	notifID, err := uuidParam(c, "id", "notification")
	if err != nil {
		return err
	}

	notif, err := h.notifService.MarkRead(c.Context(), identity.UserID, notifID)
	if err != nil {
		return err
	}
	if notif == nil {
		return middleware.NotFound("Notification not found")
	}

	return c.Status(fiber.StatusOK).JSON(notif)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllRead(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"updated": updated,
	})
}
