package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/backend/internal/domain"
)

var (
	parisCoords   = domain.Coordinates{Latitude: 48.85, Longitude: 2.35, ResolvedName: "Paris", CountryCode: "FR"}
	baCoords      = domain.Coordinates{Latitude: -34.6, Longitude: -58.38, ResolvedName: "Buenos Aires", CountryCode: "AR"}
	bangkokCoords = domain.Coordinates{Latitude: 13.75, Longitude: 100.5, ResolvedName: "Bangkok", CountryCode: "TH"}
)

func TestEstimateDay_NorthernSummer(t *testing.T) {
	got := NewSeasonalEstimator().EstimateDay(parisCoords, day(2025, time.July, 10), nil)

	assert.Equal(t, 17, got.Temperature.Min)
	assert.Equal(t, 28, got.Temperature.Max)
	assert.Equal(t, 22, got.Temperature.Average)
	assert.Equal(t, "clear sky", got.Condition)
	assert.Equal(t, domain.ComfortComfortable, got.Comfort)
	assert.Equal(t, domain.AccuracyEstimated, got.Accuracy)
}

func TestEstimateDay_HemisphereFlip(t *testing.T) {
	// July is winter south of the equator.
	got := NewSeasonalEstimator().EstimateDay(baCoords, day(2025, time.July, 10), nil)

	assert.Equal(t, 2, got.Temperature.Average)
	assert.Equal(t, "overcast clouds", got.Condition)
	assert.Equal(t, domain.ComfortUncomfortable, got.Comfort)
}

func TestEstimateDay_TropicalIgnoresMonth(t *testing.T) {
	est := NewSeasonalEstimator()

	january := est.EstimateDay(bangkokCoords, day(2025, time.January, 15), nil)
	july := est.EstimateDay(bangkokCoords, day(2025, time.July, 15), nil)

	assert.Equal(t, january.Temperature, july.Temperature)
	assert.Equal(t, january.Condition, july.Condition)
	assert.Equal(t, domain.ComfortHumid, january.Comfort)
}

func TestEstimateDay_ObservationBias(t *testing.T) {
	// Summer baseline averages 22°C; a 32°C observation shifts min/max by
	// 3°C (30% of the delta) and the average by 5°C (50%).
	current := &domain.CurrentObservation{Temperature: 32}

	got := NewSeasonalEstimator().EstimateDay(parisCoords, day(2025, time.July, 10), current)

	assert.Equal(t, 20, got.Temperature.Min)
	assert.Equal(t, 31, got.Temperature.Max)
	assert.Equal(t, 27, got.Temperature.Average)
}

func TestEstimateDay_Deterministic(t *testing.T) {
	est := NewSeasonalEstimator()

	first := est.EstimateDay(parisCoords, day(2026, time.February, 1), nil)
	second := est.EstimateDay(parisCoords, day(2026, time.February, 1), nil)

	assert.Equal(t, first, second)
}

func TestEstimateDay_IncludesDisclosure(t *testing.T) {
	got := NewSeasonalEstimator().EstimateDay(parisCoords, day(2025, time.October, 3), nil)

	require.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Recommendations[0], "seasonal")
}
