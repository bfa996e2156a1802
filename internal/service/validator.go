package service

import (
	"encoding/json"
	"fmt"

	"github.com/wanderplan/backend/internal/domain"
)

var requiredSections = []string{"summary", "itinerary", "tips"}

var daySlots = []string{"morning", "afternoon", "evening"}

// untrustedDayFields are stamped from the request and forecast after decoding;
// whatever the generator put there is discarded, so its types never matter.
var untrustedDayFields = []string{"day", "date", "temperature", "condition"}

// ItineraryValidator enforces the itinerary's structural contract and stamps
// authoritative date and weather fields onto each day. All-or-nothing:
// either a fully conformant Itinerary comes back, or an error does.
type ItineraryValidator struct{}

// NewItineraryValidator creates a new validator.
func NewItineraryValidator() *ItineraryValidator {
	return &ItineraryValidator{}
}

// Validate checks the parsed tree against the contract and returns the typed
// itinerary. Day, date, temperature and condition are always overwritten from
// the request and forecast; the generator has no access to ground truth for
// those fields and is never trusted with them.
func (v *ItineraryValidator) Validate(tree map[string]any, req domain.TripRequest, forecast domain.TripForecast) (domain.Itinerary, error) {
	for _, key := range requiredSections {
		if _, ok := tree[key]; !ok {
			return domain.Itinerary{}, &domain.SchemaViolationError{
				Reason: fmt.Sprintf("missing required %q section", key),
			}
		}
	}

	rawDays, ok := tree["itinerary"].([]any)
	if !ok {
		return domain.Itinerary{}, &domain.SchemaViolationError{
			Reason: "itinerary section is not an array",
		}
	}
	if len(rawDays) != req.Duration {
		return domain.Itinerary{}, &domain.SchemaViolationError{
			Reason:       "itinerary day count does not match trip duration",
			ExpectedDays: req.Duration,
			ActualDays:   len(rawDays),
		}
	}

	for i, rd := range rawDays {
		day, ok := rd.(map[string]any)
		if !ok {
			return domain.Itinerary{}, &domain.SchemaViolationError{
				Reason: "day entry is not an object",
				Day:    i + 1,
			}
		}
		for _, slot := range daySlots {
			value, present := day[slot]
			if !present || value == nil {
				return domain.Itinerary{}, &domain.SchemaViolationError{
					Reason: fmt.Sprintf("missing %s section", slot),
					Day:    i + 1,
				}
			}
			if _, ok := value.(map[string]any); !ok {
				return domain.Itinerary{}, &domain.SchemaViolationError{
					Reason: fmt.Sprintf("%s section is not an object", slot),
					Day:    i + 1,
				}
			}
		}
		for _, field := range untrustedDayFields {
			delete(day, field)
		}
	}

	encoded, err := json.Marshal(tree)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("validator: failed to re-encode parsed tree: %w", err)
	}
	var itinerary domain.Itinerary
	if err := json.Unmarshal(encoded, &itinerary); err != nil {
		return domain.Itinerary{}, &domain.SchemaViolationError{
			Reason: fmt.Sprintf("itinerary does not match the expected shape: %v", err),
		}
	}

	for i := range itinerary.Days {
		day := &itinerary.Days[i]
		day.Day = i + 1
		day.Date = req.StartDate.AddDate(0, 0, i).Format(domain.DateLayout)

		if len(forecast.Forecast) > 0 {
			weather := forecast.Forecast[0]
			if i < len(forecast.Forecast) {
				weather = forecast.Forecast[i]
			}
			day.Temperature = fmt.Sprintf("%d°C to %d°C", weather.Temperature.Min, weather.Temperature.Max)
			day.Condition = weather.Condition
		}
	}

	return itinerary, nil
}
