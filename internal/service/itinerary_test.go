package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/internal/repository/postgres"
	"github.com/wanderplan/backend/pkg/logger"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fencedResponse renders a structurally valid generation answer the way chat
// models tend to: wrapped in markdown fences with prose around it.
func fencedResponse(t *testing.T, days int) string {
	t.Helper()
	encoded, err := json.Marshal(itineraryTree(days))
	require.NoError(t, err)
	return "Here is your itinerary!\n```json\n" + string(encoded) + "\n```\nHave a great trip."
}

func newItineraryFixture(gen GenerationClient) (*ItineraryPipeline, *postgres.MemoryRepository) {
	start := day(2025, time.July, 1)
	weather := newTestPipeline(
		&fakeGeocoder{coords: parisCoords},
		&fakeForecastClient{samples: fiveDaySamples(start)},
	)
	trips := postgres.NewMemoryRepository()
	return NewItineraryPipeline(weather, gen, trips, logger.NewNop()), trips
}

func TestGenerateTrip_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{}
	pipeline, trips := newItineraryFixture(gen)
	gen.response = fencedResponse(t, 3)

	trip, err := pipeline.GenerateTrip(context.Background(), tripRequest(3))
	require.NoError(t, err)

	assert.NotEqual(t, trip.ID.String(), "00000000-0000-0000-0000-000000000000")
	require.Len(t, trip.Itinerary.Days, 3)
	assert.Equal(t, "2025-07-01", trip.Itinerary.Days[0].Date)
	assert.Equal(t, "Sample Trip", trip.Itinerary.Summary.Title)
	assert.Equal(t, 3, trip.Forecast.DataQuality.AccurateDays)

	saved, err := trips.GetTrip(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, saved.ID)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "exactly 3 entries")
}

func TestGenerateTrip_ClampsDuration(t *testing.T) {
	gen := &fakeGenerator{}
	pipeline, _ := newItineraryFixture(gen)
	gen.response = fencedResponse(t, domain.MaxTripDays)

	req := tripRequest(25)
	trip, err := pipeline.GenerateTrip(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, trip.Itinerary.Days, domain.MaxTripDays)
	assert.Equal(t, domain.MaxTripDays, trip.Request.Duration)
}

func TestGenerateTrip_MalformedResponseNotSaved(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot plan trips."}
	pipeline, trips := newItineraryFixture(gen)

	_, err := pipeline.GenerateTrip(context.Background(), tripRequest(3))

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)

	recent, err := trips.ListRecentTrips(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent, "a failed generation must not persist anything")
}

func TestGenerateTrip_WrongDayCountNotSaved(t *testing.T) {
	gen := &fakeGenerator{}
	pipeline, trips := newItineraryFixture(gen)
	gen.response = fencedResponse(t, 2)

	_, err := pipeline.GenerateTrip(context.Background(), tripRequest(3))

	var schemaErr *domain.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 3, schemaErr.ExpectedDays)
	assert.Equal(t, 2, schemaErr.ActualDays)

	recent, err := trips.ListRecentTrips(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestGenerateTrip_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: &domain.ProviderError{Op: "generation", Err: errors.New("quota exceeded")}}
	pipeline, _ := newItineraryFixture(gen)

	_, err := pipeline.GenerateTrip(context.Background(), tripRequest(3))

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "generation", providerErr.Op)
}

func TestGetTrip_Unknown(t *testing.T) {
	pipeline, _ := newItineraryFixture(&fakeGenerator{})

	_, err := pipeline.GetTrip(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}
