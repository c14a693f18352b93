package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedUpgrade rejects plain HTTP requests on the feed route. Browsers cannot
// set the Authorization header on a websocket handshake, so a token query
// parameter is accepted as a fallback and promoted before auth runs.
func (handler *Handler) FeedUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if c.Get(fiber.HeaderAuthorization) == "" {
		if token := c.Query("token"); token != "" {
			c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	return c.Next()
}

// Feed hands the upgraded connection to the hub, which owns it until the
// client disconnects.
func (handler *Handler) Feed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		handler.hub.Handle(conn)
	})
}
