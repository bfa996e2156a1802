package service

import (
	"math"
	"time"

	"github.com/wanderplan/backend/internal/domain"
	"github.com/wanderplan/backend/pkg/utils"
)

// tropicalLatitude bounds the band where a single warm/humid profile applies
// year-round.
const tropicalLatitude = 23.5

// estimatedDisclosure is always appended to estimated days so callers know
// the data is not a direct forecast.
const estimatedDisclosure = "Estimated from seasonal averages; recheck the forecast closer to your travel date."

type season int

const (
	seasonWinter season = iota
	seasonSpring
	seasonSummer
	seasonAutumn
)

// seasonProfile is a static baseline for a (hemisphere, season) pair. Values
// are reference numbers, not computed.
type seasonProfile struct {
	minTemp   int
	maxTemp   int
	avgTemp   int
	condition string
	humidity  int
	windSpeed float64
	precipPct int
	comfort   string
}

var tropicalProfile = seasonProfile{
	minTemp:   24,
	maxTemp:   32,
	avgTemp:   28,
	condition: "scattered showers",
	humidity:  82,
	windSpeed: 4.0,
	precipPct: 55,
	comfort:   domain.ComfortHumid,
}

var seasonProfiles = map[season]seasonProfile{
	seasonWinter: {
		minTemp:   -2,
		maxTemp:   6,
		avgTemp:   2,
		condition: "overcast clouds",
		humidity:  75,
		windSpeed: 5.0,
		precipPct: 40,
		comfort:   domain.ComfortUncomfortable,
	},
	seasonSpring: {
		minTemp:   8,
		maxTemp:   19,
		avgTemp:   15,
		condition: "partly cloudy",
		humidity:  60,
		windSpeed: 4.5,
		precipPct: 35,
		comfort:   domain.ComfortPleasant,
	},
	seasonSummer: {
		minTemp:   17,
		maxTemp:   28,
		avgTemp:   22,
		condition: "clear sky",
		humidity:  55,
		windSpeed: 3.5,
		precipPct: 20,
		comfort:   domain.ComfortComfortable,
	},
	seasonAutumn: {
		minTemp:   6,
		maxTemp:   16,
		avgTemp:   11,
		condition: "light rain",
		humidity:  70,
		windSpeed: 4.8,
		precipPct: 45,
		comfort:   domain.ComfortVariable,
	},
}

// SeasonalEstimator synthesizes daily summaries for days beyond the
// forecast horizon from hemisphere/latitude/month baselines, optionally
// biased toward the current real-time observation. Deterministic for
// identical inputs.
type SeasonalEstimator struct{}

// NewSeasonalEstimator creates a new estimator.
func NewSeasonalEstimator() *SeasonalEstimator {
	return &SeasonalEstimator{}
}

// EstimateDay produces a synthetic DailyWeather for the target date. When a
// current observation is supplied, min/max shift by 30% and the average by
// 50% of the observed-versus-baseline delta, so near-term estimated days
// track actual conditions while far-future days regress to the baseline.
func (e *SeasonalEstimator) EstimateDay(coords domain.Coordinates, date time.Time, current *domain.CurrentObservation) domain.DailyWeather {
	profile := profileFor(coords.Latitude, date.Month())

	minTemp := float64(profile.minTemp)
	maxTemp := float64(profile.maxTemp)
	avgTemp := float64(profile.avgTemp)

	if current != nil {
		delta := current.Temperature - avgTemp
		minTemp += 0.3 * delta
		maxTemp += 0.3 * delta
		avgTemp = utils.Lerp(avgTemp, current.Temperature, 0.5)
	}

	return domain.DailyWeather{
		Date: date,
		Temperature: domain.TemperatureRange{
			Min:     int(math.Round(minTemp)),
			Max:     int(math.Round(maxTemp)),
			Average: int(math.Round(avgTemp)),
		},
		Condition: profile.condition,
		Precipitation: domain.Precipitation{
			Probability: profile.precipPct,
			Expected:    profile.precipPct > precipExpectedThreshold,
		},
		Humidity:        profile.humidity,
		WindSpeed:       profile.windSpeed,
		Comfort:         profile.comfort,
		Accuracy:        domain.AccuracyEstimated,
		Recommendations: []string{estimatedDisclosure},
	}
}

// profileFor selects the baseline profile for a latitude and month. Tropical
// latitudes use one fixed profile regardless of month; elsewhere the month
// maps to a season, flipped between hemispheres.
func profileFor(latitude float64, month time.Month) seasonProfile {
	if math.Abs(latitude) < tropicalLatitude {
		return tropicalProfile
	}

	s := northernSeason(month)
	if latitude < 0 {
		s = oppositeSeason(s)
	}
	return seasonProfiles[s]
}

func northernSeason(month time.Month) season {
	switch month {
	case time.December, time.January, time.February:
		return seasonWinter
	case time.March, time.April, time.May:
		return seasonSpring
	case time.June, time.July, time.August:
		return seasonSummer
	default:
		return seasonAutumn
	}
}

func oppositeSeason(s season) season {
	switch s {
	case seasonWinter:
		return seasonSummer
	case seasonSummer:
		return seasonWinter
	case seasonSpring:
		return seasonAutumn
	default:
		return seasonSpring
	}
}
