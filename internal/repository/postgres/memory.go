package postgres

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wanderplan/backend/internal/domain"
)

// MemoryRepository implements domain.TripRepository in memory, used when no
// database is configured and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	trips map[uuid.UUID]domain.SavedTrip
}

// NewMemoryRepository creates a new in-memory trip repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{trips: make(map[uuid.UUID]domain.SavedTrip)}
}

// SaveTrip stores the trip in memory.
func (r *MemoryRepository) SaveTrip(ctx context.Context, trip domain.SavedTrip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = trip
	return nil
}

// GetTrip retrieves a trip by id.
func (r *MemoryRepository) GetTrip(ctx context.Context, id uuid.UUID) (domain.SavedTrip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trip, ok := r.trips[id]
	if !ok {
		return domain.SavedTrip{}, fmt.Errorf("memory: %s: %w", id, domain.ErrTripNotFound)
	}
	return trip, nil
}

// ListRecentTrips returns trips ordered newest first.
func (r *MemoryRepository) ListRecentTrips(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]domain.SavedTrip, 0, len(r.trips))
	for _, trip := range r.trips {
		results = append(results, trip)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Health always succeeds for the in-memory store.
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
