package service

import (
	"context"
	"sync"
	"time"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/pkg/logger"
)

// WeatherPipeline assembles a per-trip forecast: geocode once, fetch the
// provider window, aggregate in-horizon days, and estimate the rest from
// seasonal baselines. Read-only and stateless per request.
type WeatherPipeline struct {
	geocoder   Geocoder
	forecasts  ForecastClient
	aggregator *WeatherAggregator
	estimator  *SeasonalEstimator
	log        *logger.Logger
}

// NewWeatherPipeline creates a new weather pipeline.
func NewWeatherPipeline(geocoder Geocoder, forecasts ForecastClient, log *logger.Logger) *WeatherPipeline {
	return &WeatherPipeline{
		geocoder:   geocoder,
		forecasts:  forecasts,
		aggregator: NewWeatherAggregator(),
		estimator:  NewSeasonalEstimator(),
		log:        log,
	}
}

// GetForecast returns one DailyWeather per trip day, contiguous from
// startDate, plus a data-quality annotation. Days beyond the provider's
// horizon are seeded with the current real-time observation when available.
func (p *WeatherPipeline) GetForecast(ctx context.Context, destination string, startDate time.Time, duration int) (domain.TripForecast, error) {
	coords, err := p.geocoder.Resolve(ctx, destination)
	if err != nil {
		return domain.TripForecast{}, err
	}

	accurateDays := duration
	if accurateDays > domain.ForecastHorizonDays {
		accurateDays = domain.ForecastHorizonDays
	}
	estimatedDays := duration - accurateDays

	var (
		samples  []domain.ForecastSample
		current  *domain.CurrentObservation
		fetchErr error
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	// Forecast window and current observation both depend only on the
	// coordinates, so they can be fetched concurrently. The current
	// observation is needed only when estimated days exist.
	wg.Add(1)
	go func() {
		defer wg.Done()
		s, err := p.forecasts.FetchForecast(ctx, coords)
		mu.Lock()
		if err != nil {
			fetchErr = err
		} else {
			samples = s
		}
		mu.Unlock()
	}()

	if estimatedDays > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := p.forecasts.FetchCurrent(ctx, coords)
			mu.Lock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = err
				}
			} else {
				current = &obs
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	if fetchErr != nil {
		return domain.TripForecast{}, fetchErr
	}

	days := make([]domain.DailyWeather, 0, duration)
	for i := 0; i < duration; i++ {
		date := startDate.AddDate(0, 0, i)
		if i < accurateDays {
			days = append(days, p.aggregator.AggregateDay(samples, date))
		} else {
			days = append(days, p.estimator.EstimateDay(coords, date, current))
		}
	}

	p.log.Debug("trip forecast assembled",
		"destination", coords.ResolvedName,
		"accurate_days", accurateDays,
		"estimated_days", estimatedDays,
	)

	return domain.TripForecast{
		Location: coords.ResolvedName,
		Country:  coords.CountryCode,
		Forecast: days,
		DataQuality: domain.DataQuality{
			AccurateDays:  accurateDays,
			EstimatedDays: estimatedDays,
		},
	}, nil
}
