package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicehub/servicehub-api/controllers"
	"github.com/servicehub/servicehub-api/middleware"
)

// SetupChatRoutes configures all messaging related routes. Static segments
// are registered before the ":providerId" wildcard so they are not shadowed.
func SetupChatRoutes(app *fiber.App, chat *controllers.ChatController, jwtSecret string) {
	group := app.Group("/api/chat", middleware.Protected(jwtSecret))

	group.Get("/provider/conversations", chat.ProviderConversations)
	group.Get("/provider/:clientId", chat.ProviderThread)
	group.Post("/provider/reply", chat.ProviderReply)
	group.Get("/client/conversations", chat.ClientConversations)

	group.Get("/:providerId", chat.ClientThread)
	group.Post("/", chat.ClientSend)
}
