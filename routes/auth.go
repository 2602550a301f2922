package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicehub/servicehub-api/controllers"
	"github.com/servicehub/servicehub-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, ctl *controllers.AuthController, jwtSecret string) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/signup", ctl.Signup)
	auth.Post("/login", ctl.Login)

	// Protected routes
	protected := middleware.Protected(jwtSecret)
	auth.Get("/me", protected, ctl.Me)
	auth.Put("/update-profile", protected, ctl.UpdateProfile)
	auth.Put("/add-district", protected, ctl.AddDistrict)
	auth.Post("/verify-email", protected, ctl.VerifyEmail)
}
