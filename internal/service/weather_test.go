package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/pkg/logger"
)

type fakeGeocoder struct {
	coords domain.Coordinates
	err    error
}

func (f *fakeGeocoder) Resolve(ctx context.Context, destination string) (domain.Coordinates, error) {
	if f.err != nil {
		return domain.Coordinates{}, f.err
	}
	return f.coords, nil
}

type fakeForecastClient struct {
	samples      []domain.ForecastSample
	current      domain.CurrentObservation
	forecastErr  error
	currentErr   error
	currentCalls int
}

func (f *fakeForecastClient) FetchForecast(ctx context.Context, coords domain.Coordinates) ([]domain.ForecastSample, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.samples, nil
}

func (f *fakeForecastClient) FetchCurrent(ctx context.Context, coords domain.Coordinates) (domain.CurrentObservation, error) {
	f.currentCalls++
	if f.currentErr != nil {
		return domain.CurrentObservation{}, f.currentErr
	}
	return f.current, nil
}

// fiveDaySamples builds two samples per day across the provider horizon.
func fiveDaySamples(start time.Time) []domain.ForecastSample {
	var samples []domain.ForecastSample
	for i := 0; i < domain.ForecastHorizonDays; i++ {
		d := start.AddDate(0, 0, i)
		samples = append(samples,
			sampleAt(d.Add(9*time.Hour), 18+float64(i), "clear sky", 0.1),
			sampleAt(d.Add(15*time.Hour), 26+float64(i), "clear sky", 0.1),
		)
	}
	return samples
}

func newTestPipeline(geo Geocoder, fc ForecastClient) *WeatherPipeline {
	return NewWeatherPipeline(geo, fc, logger.NewNop())
}

func TestGetForecast_SevenDayTrip(t *testing.T) {
	start := day(2025, time.July, 1)
	geo := &fakeGeocoder{coords: parisCoords}
	fc := &fakeForecastClient{
		samples: fiveDaySamples(start),
		current: domain.CurrentObservation{Temperature: 24},
	}

	forecast, err := newTestPipeline(geo, fc).GetForecast(context.Background(), "Paris", start, 7)
	require.NoError(t, err)

	assert.Equal(t, "Paris", forecast.Location)
	assert.Equal(t, "FR", forecast.Country)
	require.Len(t, forecast.Forecast, 7)
	assert.Equal(t, 5, forecast.DataQuality.AccurateDays)
	assert.Equal(t, 2, forecast.DataQuality.EstimatedDays)

	for i, dw := range forecast.Forecast {
		assert.Equal(t, start.AddDate(0, 0, i), dw.Date, "dates must be contiguous from the start date")
		if i < domain.ForecastHorizonDays {
			assert.Equal(t, domain.AccuracyHigh, dw.Accuracy, "day %d", i)
		} else {
			assert.Equal(t, domain.AccuracyEstimated, dw.Accuracy, "day %d", i)
		}
	}
}

func TestGetForecast_WithinHorizonSkipsCurrentFetch(t *testing.T) {
	start := day(2025, time.July, 1)
	geo := &fakeGeocoder{coords: parisCoords}
	fc := &fakeForecastClient{samples: fiveDaySamples(start)}

	forecast, err := newTestPipeline(geo, fc).GetForecast(context.Background(), "Paris", start, 4)
	require.NoError(t, err)

	assert.Equal(t, 0, forecast.DataQuality.EstimatedDays)
	assert.Equal(t, 4, forecast.DataQuality.AccurateDays)
	assert.Equal(t, 0, fc.currentCalls)
	for _, dw := range forecast.Forecast {
		assert.Equal(t, domain.AccuracyHigh, dw.Accuracy)
	}
}

func TestGetForecast_EstimatedDaysTrackObservation(t *testing.T) {
	start := day(2025, time.July, 1)
	geo := &fakeGeocoder{coords: parisCoords}
	fc := &fakeForecastClient{
		samples: fiveDaySamples(start),
		current: domain.CurrentObservation{Temperature: 32},
	}

	forecast, err := newTestPipeline(geo, fc).GetForecast(context.Background(), "Paris", start, 6)
	require.NoError(t, err)
	require.Len(t, forecast.Forecast, 6)

	// Summer baseline average is 22°C; a 32°C observation pulls the
	// estimated day's average halfway toward it.
	assert.Equal(t, 27, forecast.Forecast[5].Temperature.Average)
	assert.Equal(t, 1, fc.currentCalls)
}

func TestGetForecast_LocationNotFound(t *testing.T) {
	geo := &fakeGeocoder{err: domain.ErrLocationNotFound}
	fc := &fakeForecastClient{}

	_, err := newTestPipeline(geo, fc).GetForecast(context.Background(), "Atlantis", day(2025, time.July, 1), 3)

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestGetForecast_ProviderFailure(t *testing.T) {
	geo := &fakeGeocoder{coords: parisCoords}
	fc := &fakeForecastClient{forecastErr: &domain.ProviderError{Op: "forecast", StatusCode: 503}}

	_, err := newTestPipeline(geo, fc).GetForecast(context.Background(), "Paris", day(2025, time.July, 1), 3)

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "forecast", providerErr.Op)
	assert.Equal(t, 503, providerErr.StatusCode)
}
