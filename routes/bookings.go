package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servicehub/servicehub-api/controllers"
	"github.com/servicehub/servicehub-api/middleware"
)

// SetupBookingRoutes configures all booking and review related routes
func SetupBookingRoutes(app *fiber.App, bookings *controllers.BookingController, reviews *controllers.ReviewController, jwtSecret string) {
	group := app.Group("/api/bookings")
	protected := middleware.Protected(jwtSecret)

	// Public calendar data
	group.Get("/availability/:providerId", bookings.Availability)

	// Client side
	group.Post("/create", protected, bookings.Create)
	group.Get("/my-bookings", protected, bookings.MyBookings)
	group.Put("/cancel/:bookingId", protected, bookings.Cancel)
	group.Put("/complete/:bookingId", protected, bookings.Complete)
	group.Post("/review", protected, reviews.Submit)

	// Provider side
	group.Put("/accept/:bookingId", protected, bookings.Accept)
	group.Get("/provider-bookings", protected, bookings.ProviderBookings)
	group.Get("/provider-stats", protected, bookings.ProviderStats)
}
