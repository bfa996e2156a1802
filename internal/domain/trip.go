package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used across the API.
const DateLayout = "2006-01-02"

// MaxTripDays caps trip duration before any downstream provider call.
const MaxTripDays = 10

// Budget tiers accepted from clients.
const (
	BudgetLow  = "budget"
	BudgetMid  = "mid-range"
	BudgetHigh = "luxury"
)

// Travel-party types accepted from clients.
const (
	GroupSolo    = "solo"
	GroupCouple  = "couple"
	GroupFamily  = "family"
	GroupFriends = "friends"
)

// TripRequest holds the parameters for a single itinerary generation.
type TripRequest struct {
	Destination    string    `json:"destination"`
	StartDate      time.Time `json:"start_date"`
	Duration       int       `json:"duration"`
	Preferences    string    `json:"preferences"`
	Budget         string    `json:"budget"`
	GroupType      string    `json:"group_type"`
	SpecificPlaces string    `json:"specific_places,omitempty"`
}

// ClampDuration bounds the requested duration to 1..MaxTripDays.
func (r *TripRequest) ClampDuration() {
	if r.Duration < 1 {
		r.Duration = 1
	}
	if r.Duration > MaxTripDays {
		r.Duration = MaxTripDays
	}
}

// TimeSlot describes one activity block within a day.
type TimeSlot struct {
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
}

// ItineraryDay is one fully planned trip day. Date, Temperature and Condition
// are always stamped from the trip forecast, never taken from AI output.
type ItineraryDay struct {
	Day         int       `json:"day"`
	Date        string    `json:"date"`
	Temperature string    `json:"temperature"`
	Condition   string    `json:"condition"`
	Morning     *TimeSlot `json:"morning"`
	Afternoon   *TimeSlot `json:"afternoon"`
	Evening     *TimeSlot `json:"evening"`
}

// TripSummary is the headline section of a generated itinerary.
type TripSummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// TripTips collects practical advice sections.
type TripTips struct {
	Transportation string   `json:"transportation"`
	Budget         []string `json:"budget"`
	Packing        []string `json:"packing"`
	Cultural       []string `json:"cultural"`
	Safety         []string `json:"safety"`
}

// Itinerary is the validated, fully populated trip plan.
type Itinerary struct {
	Summary TripSummary    `json:"summary"`
	Days    []ItineraryDay `json:"itinerary"`
	Tips    TripTips       `json:"tips"`
}

// SavedTrip is the persisted record: the originating request, the forecast the
// plan was built against, the validated itinerary, and a generation timestamp.
type SavedTrip struct {
	ID        uuid.UUID    `json:"id"`
	Request   TripRequest  `json:"request"`
	Forecast  TripForecast `json:"forecast"`
	Itinerary Itinerary    `json:"itinerary"`
	CreatedAt time.Time    `json:"created_at"`
}
