package api

import (
	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the caller's in-app notifications, newest first.
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	items, err := h.notifications.ListForUser(c.UserContext(), p.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// MarkNotificationsRead marks every notification of the caller as read.
func (h *Handlers) MarkNotificationsRead(c *fiber.Ctx) error {
	p, ok := principalFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.notifications.MarkAllRead(c.UserContext(), p.ID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"marked_read": true})
}
