package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	api.Get("/me", handler.AuthRequired, handler.Me)

	users := api.Group("/users", handler.AuthRequired, handler.AdminOnly)
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)
	users.Put("/:id", handler.UpdateUser)
	users.Post("/:id/active", handler.SetUserActive)
	users.Post("/:id/reset-password", handler.ResetUserPassword)

	api.Get("/sellers", handler.AuthRequired, handler.ManagerOrAdmin, handler.ListSellers)

	products := api.Group("/products", handler.AuthRequired)
	products.Get("", handler.ListProducts)
	products.Get("/:id", handler.GetProduct)
	products.Post("", handler.AdminOnly, handler.CreateProduct)
	products.Put("/:id", handler.AdminOnly, handler.UpdateProduct)
	products.Delete("/:id", handler.AdminOnly, handler.DeleteProduct)

	materials := api.Group("/materials", handler.AuthRequired)
	materials.Get("", handler.ListMaterials)
	materials.Get("/:id", handler.GetMaterial)
	materials.Post("", handler.AdminOnly, handler.CreateMaterial)
	materials.Put("/:id", handler.AdminOnly, handler.UpdateMaterial)
	materials.Delete("/:id", handler.AdminOnly, handler.DeleteMaterial)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Get("", handler.ListNotifications)
	notifications.Get("/unread", handler.UnreadNotificationCount)
	notifications.Post("", handler.ManagerOrAdmin, handler.CreateNotification)
	notifications.Post("/:id/read", handler.MarkNotificationRead)
	notifications.Delete("/:id", handler.AdminOnly, handler.DeleteNotification)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.ListGoals)
	goals.Post("", handler.ManagerOrAdmin, handler.CreateGoal)
	goals.Put("/:id", handler.ManagerOrAdmin, handler.UpdateGoal)
	goals.Delete("/:id", handler.ManagerOrAdmin, handler.DeactivateGoal)
	goals.Get("/:id/team", handler.GoalTeamProgress)
	goals.Post("/:id/progress", handler.RecordGoalProgress)

	api.Get("/ranking", handler.AuthRequired, handler.SellerRanking)

	tickets := api.Group("/tickets", handler.AuthRequired)
	tickets.Get("", handler.ListTickets)
	tickets.Post("", handler.OpenTicket)
	tickets.Get("/:id", handler.TicketThread)
	tickets.Post("/:id/messages", handler.ReplyTicket)
	tickets.Post("/:id/status", handler.AdminOnly, handler.UpdateTicketStatus)

	api.Get("/feed", handler.FeedUpgrade, handler.AuthRequired, handler.Feed())
}
