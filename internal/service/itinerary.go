package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/pkg/logger"
)

// ItineraryPipeline orchestrates one trip generation: weather forecast,
// prompt composition, generation, parsing, validation, and persistence.
// Every stage fails fast; errors surface unchanged to the caller, which owns
// any retry decision.
type ItineraryPipeline struct {
	weather   *WeatherPipeline
	composer  *PromptComposer
	generator GenerationClient
	parser    *ResponseParser
	validator *ItineraryValidator
	trips     domain.TripRepository
	log       *logger.Logger
}

// NewItineraryPipeline creates a new pipeline.
func NewItineraryPipeline(weather *WeatherPipeline, generator GenerationClient, trips domain.TripRepository, log *logger.Logger) *ItineraryPipeline {
	return &ItineraryPipeline{
		weather:   weather,
		composer:  NewPromptComposer(),
		generator: generator,
		parser:    NewResponseParser(),
		validator: NewItineraryValidator(),
		trips:     trips,
		log:       log,
	}
}

// GenerateTrip runs the full pipeline for one request and persists the
// result. The requested duration is clamped before any downstream call.
func (p *ItineraryPipeline) GenerateTrip(ctx context.Context, req domain.TripRequest) (domain.SavedTrip, error) {
	req.ClampDuration()

	forecast, err := p.weather.GetForecast(ctx, req.Destination, req.StartDate, req.Duration)
	if err != nil {
		return domain.SavedTrip{}, err
	}

	prompt := p.composer.Compose(req, forecast)

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.SavedTrip{}, err
	}

	tree, err := p.parser.Parse(raw)
	if err != nil {
		return domain.SavedTrip{}, err
	}

	itinerary, err := p.validator.Validate(tree, req, forecast)
	if err != nil {
		return domain.SavedTrip{}, err
	}

	trip := domain.SavedTrip{
		ID:        uuid.New(),
		Request:   req,
		Forecast:  forecast,
		Itinerary: itinerary,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.trips.SaveTrip(ctx, trip); err != nil {
		return domain.SavedTrip{}, fmt.Errorf("itinerary: failed to save trip: %w", err)
	}

	p.log.Info("trip generated",
		"trip_id", trip.ID,
		"destination", forecast.Location,
		"days", req.Duration,
		"estimated_days", forecast.DataQuality.EstimatedDays,
	)

	return trip, nil
}

// GetTrip loads a previously generated trip.
func (p *ItineraryPipeline) GetTrip(ctx context.Context, id uuid.UUID) (domain.SavedTrip, error) {
	return p.trips.GetTrip(ctx, id)
}
