package service

import (
	"math"
	"time"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/pkg/utils"
)

// precipExpectedThreshold is the probability (percent) above which rain is
// flagged as expected for the day.
const precipExpectedThreshold = 30

// WeatherAggregator collapses sub-daily forecast samples into one daily
// summary per calendar day. Pure transformation, no side effects.
type WeatherAggregator struct{}

// NewWeatherAggregator creates a new aggregator.
func NewWeatherAggregator() *WeatherAggregator {
	return &WeatherAggregator{}
}

// AggregateDay produces one DailyWeather for the target calendar date.
// Samples whose local calendar date matches the target are summarized; when
// none match, the nearest samples within a 24-hour window are used instead,
// and when even those are absent a generic placeholder marked estimated is
// returned.
func (a *WeatherAggregator) AggregateDay(samples []domain.ForecastSample, date time.Time) domain.DailyWeather {
	day := samplesForDate(samples, date)
	if len(day) == 0 {
		day = samplesNear(samples, date)
	}
	if len(day) == 0 {
		return placeholderDay(date)
	}

	minTemp := math.Inf(1)
	maxTemp := math.Inf(-1)
	var tempSum, windSum, maxPop float64
	var humiditySum int
	counts := make(map[string]int)
	var order []string

	for _, s := range day {
		if s.Temperature < minTemp {
			minTemp = s.Temperature
		}
		if s.Temperature > maxTemp {
			maxTemp = s.Temperature
		}
		tempSum += s.Temperature
		humiditySum += s.Humidity
		windSum += s.WindSpeed
		if s.PrecipProbability > maxPop {
			maxPop = s.PrecipProbability
		}
		if s.Condition != "" {
			if _, seen := counts[s.Condition]; !seen {
				order = append(order, s.Condition)
			}
			counts[s.Condition]++
		}
	}

	n := float64(len(day))
	avgTemp := int(math.Round(tempSum / n))
	humidity := humiditySum / len(day)
	probability := int(math.Round(maxPop * 100))
	expected := probability > precipExpectedThreshold
	comfort := classifyComfort(avgTemp, humidity)

	return domain.DailyWeather{
		Date: date,
		Temperature: domain.TemperatureRange{
			Min:     int(math.Round(minTemp)),
			Max:     int(math.Round(maxTemp)),
			Average: avgTemp,
		},
		Condition: dominantCondition(counts, order),
		Precipitation: domain.Precipitation{
			Probability: probability,
			Expected:    expected,
		},
		Humidity:        humidity,
		WindSpeed:       utils.RoundTo(windSum/n, 1),
		Comfort:         comfort,
		Accuracy:        domain.AccuracyHigh,
		Recommendations: buildRecommendations(avgTemp, expected, comfort),
	}
}

// samplesForDate filters samples whose local calendar date equals the target.
func samplesForDate(samples []domain.ForecastSample, date time.Time) []domain.ForecastSample {
	target := date.Format(domain.DateLayout)
	var out []domain.ForecastSample
	for _, s := range samples {
		if s.Time.Format(domain.DateLayout) == target {
			out = append(out, s)
		}
	}
	return out
}

// samplesNear returns samples within 24 hours of the target date's midday.
// Covers the forecast-horizon boundary where a day has no direct samples.
func samplesNear(samples []domain.ForecastSample, date time.Time) []domain.ForecastSample {
	midday := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	var out []domain.ForecastSample
	for _, s := range samples {
		diff := s.Time.Sub(midday)
		if diff < 0 {
			diff = -diff
		}
		if diff <= 24*time.Hour {
			out = append(out, s)
		}
	}
	return out
}

// dominantCondition returns the most frequent condition label. Ties break to
// the first-encountered label in sample order, keeping the result
// deterministic.
func dominantCondition(counts map[string]int, order []string) string {
	best := ""
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// classifyComfort maps average temperature and humidity to a coarse label.
// Rules run in fixed priority order; temperature extremes win.
func classifyComfort(avgTemp, humidity int) string {
	switch {
	case avgTemp < 10 || avgTemp > 35:
		return domain.ComfortUncomfortable
	case humidity > 80:
		return domain.ComfortHumid
	case avgTemp >= 18 && avgTemp <= 25 && humidity <= 70:
		return domain.ComfortComfortable
	case avgTemp >= 15 && avgTemp <= 30:
		return domain.ComfortPleasant
	default:
		return domain.ComfortVariable
	}
}

func buildRecommendations(avgTemp int, rainExpected bool, comfort string) []string {
	var recs []string
	if rainExpected {
		recs = append(recs, "Rain is likely; pack an umbrella or rain jacket.")
	}
	switch {
	case avgTemp < 10:
		recs = append(recs, "Cold conditions; bring warm layers.")
	case avgTemp > 30:
		recs = append(recs, "Hot conditions; carry water and sun protection.")
	}
	if comfort == domain.ComfortHumid {
		recs = append(recs, "High humidity; favor light, breathable clothing.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Conditions look good for outdoor plans.")
	}
	return recs
}

// placeholderDay is the designed degradation when no forecast samples fall
// anywhere near the target date.
func placeholderDay(date time.Time) domain.DailyWeather {
	return domain.DailyWeather{
		Date: date,
		Temperature: domain.TemperatureRange{
			Min:     12,
			Max:     22,
			Average: 17,
		},
		Condition: "partly cloudy",
		Precipitation: domain.Precipitation{
			Probability: 20,
			Expected:    false,
		},
		Humidity:  60,
		WindSpeed: 3.5,
		Comfort:   domain.ComfortPleasant,
		Accuracy:  domain.AccuracyEstimated,
		Recommendations: []string{
			"Forecast data was unavailable for this day; check conditions closer to your travel date.",
		},
	}
}
