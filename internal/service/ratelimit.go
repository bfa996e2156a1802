package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wanderplan/backend/internal/domain"
)

// RateLimitedGeocoder wraps a Geocoder with rate limiting so provider quotas
// hold under concurrent requests.
type RateLimitedGeocoder struct {
	geocoder Geocoder
	limiter  *rate.Limiter
}

// NewRateLimitedGeocoder creates a rate limited geocoder.
// rps is the maximum requests per second (can be fractional), burst the
// maximum burst size.
func NewRateLimitedGeocoder(geocoder Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Resolve waits for rate limiter permission, then forwards to the wrapped
// geocoder.
func (r *RateLimitedGeocoder) Resolve(ctx context.Context, destination string) (domain.Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Resolve(ctx, destination)
}

// RateLimitedForecastClient wraps a ForecastClient with rate limiting.
type RateLimitedForecastClient struct {
	client  ForecastClient
	limiter *rate.Limiter
}

// NewRateLimitedForecastClient creates a rate limited forecast client.
func NewRateLimitedForecastClient(client ForecastClient, rps float64, burst int) *RateLimitedForecastClient {
	return &RateLimitedForecastClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchForecast waits for rate limiter permission, then forwards to the
// wrapped client.
func (r *RateLimitedForecastClient) FetchForecast(ctx context.Context, coords domain.Coordinates) ([]domain.ForecastSample, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.FetchForecast(ctx, coords)
}

// FetchCurrent waits for rate limiter permission, then forwards to the
// wrapped client.
func (r *RateLimitedForecastClient) FetchCurrent(ctx context.Context, coords domain.Coordinates) (domain.CurrentObservation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.CurrentObservation{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.FetchCurrent(ctx, coords)
}

// Verify that the rate limited types implement the required interfaces
var (
	_ Geocoder       = (*RateLimitedGeocoder)(nil)
	_ ForecastClient = (*RateLimitedForecastClient)(nil)
)
