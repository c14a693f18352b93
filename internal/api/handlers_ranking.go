package api

import "github.com/gofiber/fiber/v2"

// SellerRanking serves the leaderboard. Every authenticated role may read
// it; the engine itself only ranks active vendedores.
func (handler *Handler) SellerRanking(c *fiber.Ctx) error {
	entries, err := handler.goals.Leaderboard(handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}
