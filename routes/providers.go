package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicehub/servicehub-api/controllers"
	"github.com/servicehub/servicehub-api/middleware"
)

// SetupProviderRoutes configures all provider registry related routes
func SetupProviderRoutes(app *fiber.App, providers *controllers.ProviderController, reviews *controllers.ReviewController, jwtSecret string) {
	group := app.Group("/api/providers")
	protected := middleware.Protected(jwtSecret)

	// Public discovery
	group.Get("/category/:categoryName", providers.ByCategory)
	group.Get("/profileview/:providerId", providers.ProfileView)
	group.Get("/:id/reviews", reviews.ListForProvider)

	// Provider's own profile and ledger
	group.Post("/register", protected, providers.Register)
	group.Get("/profile", protected, providers.GetProfile)
	group.Put("/availability", protected, providers.UpdateAvailability)
	group.Get("/earnings", protected, providers.ListEarnings)
	group.Post("/earnings", protected, providers.AddEarning)
}
