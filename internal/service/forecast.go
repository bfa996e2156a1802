package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wanderplan/backend/internal/domain"
)

const openWeatherDataURL = "https://api.openweathermap.org/data/2.5"

// ForecastClient fetches provider weather data for resolved coordinates.
type ForecastClient interface {
	// FetchForecast returns the provider's native forecast window as
	// timestamped samples, commonly 5 days at 3-hour resolution. Callers
	// must not assume a specific sample count or spacing.
	FetchForecast(ctx context.Context, coords domain.Coordinates) ([]domain.ForecastSample, error)

	// FetchCurrent returns the real-time observation for the coordinates.
	FetchCurrent(ctx context.Context, coords domain.Coordinates) (domain.CurrentObservation, error)
}

// OpenWeatherClient fetches forecast and current conditions from the
// OpenWeatherMap data API.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a new forecast client.
func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: openWeatherDataURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"` // UTC offset in seconds
	} `json:"city"`
}

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// FetchForecast returns the 5-day/3-hour forecast window. Sample timestamps
// are shifted into the city's local zone so they group by calendar day.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, coords domain.Coordinates) ([]domain.ForecastSample, error) {
	var decoded forecastResponse
	if err := c.get(ctx, "forecast", "/forecast", coords, &decoded); err != nil {
		return nil, err
	}

	local := time.UTC
	if decoded.City.Timezone != 0 {
		local = time.FixedZone("local", decoded.City.Timezone)
	}

	samples := make([]domain.ForecastSample, 0, len(decoded.List))
	for _, item := range decoded.List {
		sample := domain.ForecastSample{
			Time:              time.Unix(item.Dt, 0).In(local),
			Temperature:       item.Main.Temp,
			Humidity:          item.Main.Humidity,
			WindSpeed:         item.Wind.Speed,
			PrecipProbability: item.Pop,
		}
		if len(item.Weather) > 0 {
			sample.Condition = item.Weather[0].Description
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// FetchCurrent returns the real-time observation for the coordinates.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, coords domain.Coordinates) (domain.CurrentObservation, error) {
	var decoded currentResponse
	if err := c.get(ctx, "current", "/weather", coords, &decoded); err != nil {
		return domain.CurrentObservation{}, err
	}

	obs := domain.CurrentObservation{
		Temperature: decoded.Main.Temp,
		Humidity:    decoded.Main.Humidity,
		WindSpeed:   decoded.Wind.Speed,
	}
	if len(decoded.Weather) > 0 {
		obs.Condition = decoded.Weather[0].Description
	}
	return obs, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, op, path string, coords domain.Coordinates, out interface{}) error {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("forecast: failed to create %s request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.ProviderError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("forecast: failed to decode %s response: %w", op, err)
	}
	return nil
}
