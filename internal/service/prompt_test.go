package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/backend/internal/domain"
)

func TestCompose_IncludesTripParameters(t *testing.T) {
	req := tripRequest(3)
	req.Preferences = "art and food"
	req.SpecificPlaces = "Louvre"

	prompt := NewPromptComposer().Compose(req, tripForecast(3))

	assert.Contains(t, prompt, "Create a 3-day travel itinerary for Paris, FR, starting 2025-07-01.")
	assert.Contains(t, prompt, "art and food")
	assert.Contains(t, prompt, "Louvre")
	assert.Contains(t, prompt, "The itinerary array must contain exactly 3 entries, one per day.")
}

func TestCompose_WeatherLines(t *testing.T) {
	forecast := tripForecast(2)
	forecast.Forecast[0].Precipitation.Probability = 45
	forecast.Forecast[1].Accuracy = domain.AccuracyEstimated

	prompt := NewPromptComposer().Compose(tripRequest(2), forecast)

	assert.Contains(t, prompt, "- 2025-07-01: 10 to 20°C, condition-0, rain chance 45%")
	assert.Contains(t, prompt, "- 2025-07-02: 11 to 21°C, condition-1, rain chance 0% (seasonal estimate)")

	// Accurate days carry no estimate marker.
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- 2025-07-01") {
			assert.NotContains(t, line, "seasonal estimate")
		}
	}
}

func TestCompose_UnknownTiersFallBack(t *testing.T) {
	req := tripRequest(2)
	req.Budget = "extravagant"
	req.GroupType = "entourage"

	prompt := NewPromptComposer().Compose(req, tripForecast(2))

	assert.Contains(t, prompt, budgetGuidance[domain.BudgetMid])
	assert.Contains(t, prompt, groupGuidance[domain.GroupSolo])
}

func TestCompose_Deterministic(t *testing.T) {
	req := tripRequest(4)
	forecast := tripForecast(4)

	assert.Equal(t, NewPromptComposer().Compose(req, forecast), NewPromptComposer().Compose(req, forecast))
}

func TestCompose_MatchesRequestedDuration(t *testing.T) {
	for _, days := range []int{1, 5, 10} {
		prompt := NewPromptComposer().Compose(tripRequest(days), tripForecast(days))
		assert.Contains(t, prompt, fmt.Sprintf("exactly %d entries", days))
	}
}
