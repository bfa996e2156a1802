package domain

import "time"

// ForecastHorizonDays is the number of leading trip days the weather provider
// covers with direct per-sample forecasts.
const ForecastHorizonDays = 5

// Accuracy labels for a daily summary.
const (
	AccuracyHigh      = "high"
	AccuracyEstimated = "estimated"
)

// Comfort classifications derived from temperature and humidity.
const (
	ComfortComfortable   = "comfortable"
	ComfortPleasant      = "pleasant"
	ComfortHumid         = "humid"
	ComfortUncomfortable = "uncomfortable"
	ComfortVariable      = "variable"
)

// Coordinates is the geocoded location for a trip. Resolved once per request
// and never mutated afterwards.
type Coordinates struct {
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lon"`
	ResolvedName string  `json:"resolved_name"`
	CountryCode  string  `json:"country_code"`
}

// ForecastSample is one sub-daily forecast entry from the provider, typically
// at 3-hour resolution. Time carries the provider's local UTC offset so
// samples group by local calendar day.
type ForecastSample struct {
	Time              time.Time
	Temperature       float64
	Condition         string
	Humidity          int
	WindSpeed         float64
	PrecipProbability float64 // 0..1
}

// CurrentObservation is the provider's real-time reading for a location.
type CurrentObservation struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// TemperatureRange summarizes a day's temperatures in whole degrees Celsius.
type TemperatureRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// Precipitation summarizes rain likelihood for a day.
type Precipitation struct {
	Probability int  `json:"probability_percent"`
	Expected    bool `json:"expected"`
}

// DailyWeather is the per-day summary used to build and annotate itineraries.
type DailyWeather struct {
	Date            time.Time        `json:"date"`
	Temperature     TemperatureRange `json:"temperature"`
	Condition       string           `json:"condition"`
	Precipitation   Precipitation    `json:"precipitation"`
	Humidity        int              `json:"humidity"`
	WindSpeed       float64          `json:"wind_speed"`
	Comfort         string           `json:"comfort"`
	Accuracy        string           `json:"accuracy"`
	Recommendations []string         `json:"recommendations"`
}

// DataQuality reports how much of a trip forecast came from direct provider
// data versus seasonal estimation.
type DataQuality struct {
	AccurateDays  int `json:"accurate_days"`
	EstimatedDays int `json:"estimated_days"`
}

// TripForecast holds one DailyWeather per trip day, contiguous from the
// trip's start date.
type TripForecast struct {
	Location    string         `json:"location"`
	Country     string         `json:"country"`
	Forecast    []DailyWeather `json:"forecast"`
	DataQuality DataQuality    `json:"data_quality"`
}
