package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes.
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Trip generation and retrieval
		api.Post("/trips", handler.CreateTrip)
		api.Get("/trips", handler.ListTrips)
		api.Get("/trips/:id", handler.GetTrip)

		// Export and sharing
		api.Get("/trips/:id/ics", handler.GetTripICS)
		api.Post("/trips/:id/share", handler.ShareTrip)
		api.Get("/shared/:token", handler.GetSharedTrip)

		// Forecast preview
		api.Get("/weather", handler.GetForecast)
	}
}
