package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/internal/service"
	"github.com/wanderplan/backend/pkg/logger"
	"github.com/wanderplan/backend/pkg/utils"
)

// Handler contains all HTTP handlers.
type Handler struct {
	itineraries *service.ItineraryPipeline
	weather     *service.WeatherPipeline
	exports     *service.ExportService
	trips       domain.TripRepository
	log         *logger.Logger
}

// NewHandler creates a new handler.
func NewHandler(itineraries *service.ItineraryPipeline, weather *service.WeatherPipeline, exports *service.ExportService, trips domain.TripRepository, log *logger.Logger) *Handler {
	return &Handler{
		itineraries: itineraries,
		weather:     weather,
		exports:     exports,
		trips:       trips,
		log:         log,
	}
}

type tripRequestBody struct {
	Destination    string `json:"destination"`
	StartDate      string `json:"start_date"`
	Duration       int    `json:"duration"`
	Preferences    string `json:"preferences"`
	Budget         string `json:"budget"`
	GroupType      string `json:"group_type"`
	SpecificPlaces string `json:"specific_places"`
}

// HealthCheck returns service health status, including trip storage
// connectivity.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.trips.Health(c.Context()); err != nil {
		storage = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "wanderplan-backend",
		"version": "1.0.0",
		"storage": storage,
	})
}

// CreateTrip generates and persists a full itinerary for the request.
func (h *Handler) CreateTrip(c *fiber.Ctx) error {
	var body tripRequestBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(body.Destination) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Destination is required")
	}
	startDate, err := time.Parse(domain.DateLayout, body.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
	}

	req := domain.TripRequest{
		Destination:    body.Destination,
		StartDate:      startDate,
		Duration:       body.Duration,
		Preferences:    body.Preferences,
		Budget:         body.Budget,
		GroupType:      body.GroupType,
		SpecificPlaces: body.SpecificPlaces,
	}

	trip, err := h.itineraries.GenerateTrip(c.Context(), req)
	if err != nil {
		return h.mapDomainError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    trip,
	})
}

// GetTrip returns a previously generated trip.
func (h *Handler) GetTrip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trip id")
	}

	trip, err := h.itineraries.GetTrip(c.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    trip,
	})
}

// ListTrips returns the most recently generated trips.
func (h *Handler) ListTrips(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	trips, err := h.trips.ListRecentTrips(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list trips")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    trips,
		"count":   len(trips),
	})
}

// GetTripICS returns the trip as a downloadable iCalendar document.
func (h *Handler) GetTripICS(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trip id")
	}

	trip, err := h.itineraries.GetTrip(c.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	ics, err := h.exports.RenderICS(trip)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render calendar")
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="trip.ics"`)
	return c.SendString(ics)
}

// ShareTrip issues a share token for a trip.
func (h *Handler) ShareTrip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid trip id")
	}

	token, err := h.exports.CreateShareLink(c.Context(), id)
	if err != nil {
		return h.mapDomainError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
		},
	})
}

// GetSharedTrip resolves a share token to its trip.
func (h *Handler) GetSharedTrip(c *fiber.Ctx) error {
	trip, err := h.exports.ResolveShareLink(c.Context(), c.Params("token"))
	if err != nil {
		return h.mapDomainError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    trip,
	})
}

// GetForecast previews the weather pipeline for a destination without
// generating an itinerary.
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	destination := c.Query("destination")
	if strings.TrimSpace(destination) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "destination query parameter is required")
	}
	startDate, err := time.Parse(domain.DateLayout, c.Query("start_date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
	}
	days := int(utils.Clamp(float64(c.QueryInt("days", domain.ForecastHorizonDays)), 1, domain.MaxTripDays))

	forecast, err := h.weather.GetForecast(c.Context(), destination, startDate, days)
	if err != nil {
		return h.mapDomainError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    forecast,
	})
}

// mapDomainError translates pipeline error kinds into distinct, actionable
// HTTP responses.
func (h *Handler) mapDomainError(err error) error {
	var (
		providerErr  *domain.ProviderError
		malformedErr *domain.MalformedResponseError
		schemaErr    *domain.SchemaViolationError
	)

	switch {
	case errors.Is(err, domain.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "We don't recognize that destination")
	case errors.Is(err, domain.ErrTripNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Trip not found")
	case errors.Is(err, domain.ErrShareNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Share link is unknown or expired")
	case errors.As(err, &malformedErr), errors.As(err, &schemaErr):
		h.log.Error("generation output rejected", "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "Our AI planner returned an unusable itinerary; please try again")
	case errors.As(err, &providerErr):
		h.log.Error("provider call failed", "op", providerErr.Op, "error", err)
		if providerErr.Op == "generation" {
			return fiber.NewError(fiber.StatusBadGateway, "Our AI planner is temporarily unavailable")
		}
		return fiber.NewError(fiber.StatusBadGateway, "Weather data is temporarily unavailable")
	default:
		h.log.Error("unexpected pipeline failure", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}
