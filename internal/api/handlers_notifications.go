package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pedrohqs/atrio/internal/models"
)

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	views, err := handler.notifications.ListForUser(currentUser(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(views)
}

func (handler *Handler) UnreadNotificationCount(c *fiber.Ctx) error {
	unread, err := handler.notifications.UnreadCountForUser(currentUser(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread": unread})
}

func (handler *Handler) CreateNotification(c *fiber.Ctx) error {
	var input notificationInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	notification := models.Notification{
		Title:        input.Title,
		Body:         input.Body,
		VisibleRoles: input.VisibleRoles,
		Regions:      input.Regions,
		CreatedByID:  currentUser(c).ID,
	}
	if err := handler.notifications.Publish(&notification); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("notifications", "insert")
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := c.ParamsInt("id")
	if err != nil || notificationID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	if err := handler.notifications.MarkRead(currentUser(c), uint(notificationID), handler.now()); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := c.ParamsInt("id")
	if err != nil || notificationID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	if _, err := handler.repos.Notifications.FindByID(uint(notificationID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.notifications.Delete(uint(notificationID)); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("notifications", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}
