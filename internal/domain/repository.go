package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TripRepository defines the interface for trip persistence.
// This follows the Dependency Inversion Principle - domain defines the interface.
type TripRepository interface {
	// SaveTrip persists a generated trip.
	SaveTrip(ctx context.Context, trip SavedTrip) error

	// GetTrip retrieves a trip by id, returning ErrTripNotFound when absent.
	GetTrip(ctx context.Context, id uuid.UUID) (SavedTrip, error)

	// ListRecentTrips retrieves the most recently generated trips.
	ListRecentTrips(ctx context.Context, limit int) ([]SavedTrip, error)

	// Health checks store connectivity.
	Health(ctx context.Context) error
}

// ShareRepository stores share tokens that resolve to trip ids.
type ShareRepository interface {
	// SaveShareToken records token -> trip id with a time-to-live.
	SaveShareToken(ctx context.Context, token string, tripID uuid.UUID, ttl time.Duration) error

	// ResolveShareToken returns the trip id for a token, or ErrShareNotFound.
	ResolveShareToken(ctx context.Context, token string) (uuid.UUID, error)
}
