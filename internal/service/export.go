package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wanderplan/backend/internal/domain"
)

// shareTTL is how long a share link stays resolvable.
const shareTTL = 30 * 24 * time.Hour

const icsTimestampLayout = "20060102T150405"

// slot start hours within a trip day.
var slotSchedule = []struct {
	name string
	hour int
	pick func(domain.ItineraryDay) *domain.TimeSlot
}{
	{"morning", 9, func(d domain.ItineraryDay) *domain.TimeSlot { return d.Morning }},
	{"afternoon", 14, func(d domain.ItineraryDay) *domain.TimeSlot { return d.Afternoon }},
	{"evening", 19, func(d domain.ItineraryDay) *domain.TimeSlot { return d.Evening }},
}

// ExportService renders saved trips as ICS calendars and issues share links.
type ExportService struct {
	trips  domain.TripRepository
	shares domain.ShareRepository
}

// NewExportService creates a new export service.
func NewExportService(trips domain.TripRepository, shares domain.ShareRepository) *ExportService {
	return &ExportService{trips: trips, shares: shares}
}

// RenderICS renders the trip as an iCalendar document with one event per
// planned time slot.
func (s *ExportService) RenderICS(trip domain.SavedTrip) (string, error) {
	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//wanderplan//trip-planner//EN")
	writeICSLine(&b, "CALSCALE:GREGORIAN")

	stamp := trip.CreatedAt.UTC().Format(icsTimestampLayout)

	for _, day := range trip.Itinerary.Days {
		date, err := time.Parse(domain.DateLayout, day.Date)
		if err != nil {
			return "", fmt.Errorf("export: invalid day date %q: %w", day.Date, err)
		}
		for _, entry := range slotSchedule {
			slot := entry.pick(day)
			if slot == nil {
				continue
			}
			start := time.Date(date.Year(), date.Month(), date.Day(), entry.hour, 0, 0, 0, time.UTC)
			end := start.Add(3 * time.Hour)

			writeICSLine(&b, "BEGIN:VEVENT")
			writeICSLine(&b, fmt.Sprintf("UID:%s-day%d-%s@wanderplan", trip.ID, day.Day, entry.name))
			writeICSLine(&b, "DTSTAMP:"+stamp+"Z")
			writeICSLine(&b, "DTSTART:"+start.Format(icsTimestampLayout))
			writeICSLine(&b, "DTEND:"+end.Format(icsTimestampLayout))
			writeICSLine(&b, "SUMMARY:"+escapeICS(slot.Activity))
			if slot.Location != "" {
				writeICSLine(&b, "LOCATION:"+escapeICS(slot.Location))
			}
			if slot.Description != "" {
				writeICSLine(&b, "DESCRIPTION:"+escapeICS(slot.Description))
			}
			writeICSLine(&b, "END:VEVENT")
		}
	}

	writeICSLine(&b, "END:VCALENDAR")
	return b.String(), nil
}

// CreateShareLink issues a token that resolves to the trip for shareTTL.
func (s *ExportService) CreateShareLink(ctx context.Context, tripID uuid.UUID) (string, error) {
	if _, err := s.trips.GetTrip(ctx, tripID); err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.shares.SaveShareToken(ctx, token, tripID, shareTTL); err != nil {
		return "", fmt.Errorf("export: failed to save share token: %w", err)
	}
	return token, nil
}

// ResolveShareLink returns the trip behind a share token.
func (s *ExportService) ResolveShareLink(ctx context.Context, token string) (domain.SavedTrip, error) {
	tripID, err := s.shares.ResolveShareToken(ctx, token)
	if err != nil {
		return domain.SavedTrip{}, err
	}
	return s.trips.GetTrip(ctx, tripID)
}

func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
