package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListTickets(c *fiber.Ctx) error {
	tickets, err := handler.tickets.ListForUser(currentUser(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(tickets)
}

func (handler *Handler) OpenTicket(c *fiber.Ctx) error {
	var input ticketInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	ticket, err := handler.tickets.Open(currentUser(c), input.Subject, input.Body)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("tickets", "insert")
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (handler *Handler) TicketThread(c *fiber.Ctx) error {
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	ticket, messages, err := handler.tickets.Thread(currentUser(c), uint(ticketID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ticket":   ticket,
		"messages": messages,
	})
}

func (handler *Handler) ReplyTicket(c *fiber.Ctx) error {
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	var input ticketReplyInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	message, err := handler.tickets.Reply(currentUser(c), uint(ticketID), input.Body)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("tickets", "update")
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (handler *Handler) UpdateTicketStatus(c *fiber.Ctx) error {
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	var input ticketStatusInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	if err := handler.tickets.UpdateStatus(uint(ticketID), input.Status, input.AssignedToID); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("tickets", "update")
	return c.JSON(fiber.Map{"status": "ok"})
}
