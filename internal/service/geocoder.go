package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wanderplan/backend/internal/domain"
)

const openWeatherGeoURL = "https://api.openweathermap.org/geo/1.0/direct"

// Geocoder resolves a free-text destination to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, destination string) (domain.Coordinates, error)
}

// OpenWeatherGeocoder resolves destinations through the OpenWeatherMap
// geocoding API, taking the first match.
type OpenWeatherGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherGeocoder creates a new geocoder client.
func NewOpenWeatherGeocoder(apiKey string) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{
		apiKey:  apiKey,
		baseURL: openWeatherGeoURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeMatch struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Resolve returns the first geocoding match for the destination. Zero matches
// is a normal failure mode and maps to domain.ErrLocationNotFound.
func (g *OpenWeatherGeocoder) Resolve(ctx context.Context, destination string) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("q", destination)
	q.Set("limit", "1")
	q.Set("appid", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocoder: failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, &domain.ProviderError{Op: "geocode", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, &domain.ProviderError{Op: "geocode", StatusCode: resp.StatusCode}
	}

	var matches []geocodeMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}

	if len(matches) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocoder: %q: %w", destination, domain.ErrLocationNotFound)
	}

	first := matches[0]
	return domain.Coordinates{
		Latitude:     first.Lat,
		Longitude:    first.Lon,
		ResolvedName: first.Name,
		CountryCode:  first.Country,
	}, nil
}
