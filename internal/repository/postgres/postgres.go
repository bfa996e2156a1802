package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderplan/backend/internal/domain"
)

// TripRepository implements domain.TripRepository on PostgreSQL. Forecast and
// itinerary documents are stored as jsonb alongside the request columns.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

// SaveTrip persists a generated trip.
func (r *TripRepository) SaveTrip(ctx context.Context, trip domain.SavedTrip) error {
	forecast, err := json.Marshal(trip.Forecast)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode forecast: %w", err)
	}
	itinerary, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode itinerary: %w", err)
	}

	query := `
		INSERT INTO trips (
			id, destination, start_date, duration, preferences,
			budget, group_type, specific_places, forecast, itinerary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		trip.ID, trip.Request.Destination, trip.Request.StartDate, trip.Request.Duration,
		trip.Request.Preferences, trip.Request.Budget, trip.Request.GroupType,
		trip.Request.SpecificPlaces, forecast, itinerary, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save trip: %w", err)
	}

	return nil
}

// GetTrip retrieves one trip by id.
func (r *TripRepository) GetTrip(ctx context.Context, id uuid.UUID) (domain.SavedTrip, error) {
	query := `
		SELECT id, destination, start_date, duration, preferences,
			   budget, group_type, specific_places, forecast, itinerary, created_at
		FROM trips
		WHERE id = $1
	`

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedTrip{}, fmt.Errorf("postgres: %s: %w", id, domain.ErrTripNotFound)
		}
		return domain.SavedTrip{}, fmt.Errorf("postgres: failed to load trip: %w", err)
	}

	return trip, nil
}

// ListRecentTrips retrieves the most recently generated trips.
func (r *TripRepository) ListRecentTrips(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
	query := `
		SELECT id, destination, start_date, duration, preferences,
			   budget, group_type, specific_places, forecast, itinerary, created_at
		FROM trips
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trips: %w", err)
	}
	defer rows.Close()

	var results []domain.SavedTrip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan trip row: %w", err)
		}
		results = append(results, trip)
	}

	return results, nil
}

// Health checks database connectivity.
func (r *TripRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func scanTrip(row pgx.Row) (domain.SavedTrip, error) {
	var (
		trip      domain.SavedTrip
		startDate time.Time
		forecast  []byte
		itinerary []byte
	)

	err := row.Scan(
		&trip.ID, &trip.Request.Destination, &startDate, &trip.Request.Duration,
		&trip.Request.Preferences, &trip.Request.Budget, &trip.Request.GroupType,
		&trip.Request.SpecificPlaces, &forecast, &itinerary, &trip.CreatedAt,
	)
	if err != nil {
		return domain.SavedTrip{}, err
	}

	trip.Request.StartDate = startDate
	if err := json.Unmarshal(forecast, &trip.Forecast); err != nil {
		return domain.SavedTrip{}, fmt.Errorf("failed to decode forecast: %w", err)
	}
	if err := json.Unmarshal(itinerary, &trip.Itinerary); err != nil {
		return domain.SavedTrip{}, fmt.Errorf("failed to decode itinerary: %w", err)
	}

	return trip, nil
}
