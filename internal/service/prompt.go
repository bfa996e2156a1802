package service

import (
	"fmt"
	"strings"

	"github.com/wanderplan/backend/internal/domain"
)

// budgetGuidance keys generation advice by budget tier. Unrecognized tiers
// fall back to mid-range rather than failing.
var budgetGuidance = map[string]string{
	domain.BudgetLow:  "Favor free attractions, street food, public transport, and hostels or guesthouses.",
	domain.BudgetMid:  "Balance cost and comfort: mid-range hotels, casual restaurants, and paid attractions that are worth it.",
	domain.BudgetHigh: "Prioritize premium experiences: fine dining, private tours, and boutique or five-star hotels.",
}

// groupGuidance keys generation advice by travel-party type. Unrecognized
// types fall back to solo.
var groupGuidance = map[string]string{
	domain.GroupSolo:    "Plan for one traveler; include social options and safe evening activities.",
	domain.GroupCouple:  "Plan for two; include romantic dinners and scenic spots.",
	domain.GroupFamily:  "Plan family-friendly activities suitable for children, with a relaxed pace.",
	domain.GroupFriends: "Plan for a group of friends; include nightlife and shared experiences.",
}

// PromptComposer converts trip parameters and the assembled forecast into a
// generation request. Pure function; never fails.
type PromptComposer struct{}

// NewPromptComposer creates a new composer.
func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

// Compose builds the prompt text for one trip.
func (c *PromptComposer) Compose(req domain.TripRequest, forecast domain.TripForecast) string {
	budget, ok := budgetGuidance[req.Budget]
	if !ok {
		budget = budgetGuidance[domain.BudgetMid]
	}
	group, ok := groupGuidance[req.GroupType]
	if !ok {
		group = groupGuidance[domain.GroupSolo]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day travel itinerary for %s", req.Duration, forecast.Location)
	if forecast.Country != "" {
		fmt.Fprintf(&b, ", %s", forecast.Country)
	}
	fmt.Fprintf(&b, ", starting %s.\n\n", req.StartDate.Format(domain.DateLayout))

	b.WriteString("Budget guidance: " + budget + "\n")
	b.WriteString("Group guidance: " + group + "\n")
	if req.Preferences != "" {
		b.WriteString("Traveler preferences: " + req.Preferences + "\n")
	}
	if req.SpecificPlaces != "" {
		b.WriteString("Must include these places if feasible: " + req.SpecificPlaces + "\n")
	}

	b.WriteString("\nWeather outlook (plan activities accordingly):\n")
	for _, day := range forecast.Forecast {
		fmt.Fprintf(&b, "- %s: %d to %d°C, %s, rain chance %d%%",
			day.Date.Format(domain.DateLayout),
			day.Temperature.Min, day.Temperature.Max,
			day.Condition, day.Precipitation.Probability,
		)
		if day.Accuracy == domain.AccuracyEstimated {
			b.WriteString(" (seasonal estimate)")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nRespond with a single JSON object and no surrounding text, in exactly this structure:\n")
	b.WriteString(`{
  "summary": {"title": "", "description": "", "highlights": [""]},
  "itinerary": [
    {
      "day": 1,
      "morning": {"activity": "", "location": "", "duration": "", "description": "", "cost": ""},
      "afternoon": {"activity": "", "location": "", "duration": "", "description": "", "cost": ""},
      "evening": {"activity": "", "location": "", "duration": "", "description": "", "cost": ""}
    }
  ],
  "tips": {"transportation": "", "budget": [""], "packing": [""], "cultural": [""], "safety": [""]}
}
`)
	fmt.Fprintf(&b, "The itinerary array must contain exactly %d entries, one per day. All field values must be strings.\n", req.Duration)

	return b.String()
}
