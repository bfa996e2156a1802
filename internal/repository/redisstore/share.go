package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wanderplan/backend/internal/domain"
)

const shareKeyPrefix = "share:"

// ShareStore implements domain.ShareRepository on Redis. Tokens expire via
// Redis key TTLs.
type ShareStore struct {
	client *redis.Client
}

// NewShareStore creates a new Redis-backed share store.
func NewShareStore(client *redis.Client) *ShareStore {
	return &ShareStore{client: client}
}

// SaveShareToken records token -> trip id with a TTL.
func (s *ShareStore) SaveShareToken(ctx context.Context, token string, tripID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, shareKeyPrefix+token, tripID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to save share token: %w", err)
	}
	return nil
}

// ResolveShareToken returns the trip id for a token.
func (s *ShareStore) ResolveShareToken(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, shareKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, fmt.Errorf("redis: %w", domain.ErrShareNotFound)
		}
		return uuid.Nil, fmt.Errorf("redis: failed to resolve share token: %w", err)
	}

	tripID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("redis: corrupt share token value: %w", err)
	}
	return tripID, nil
}

// MemoryShareStore implements domain.ShareRepository in memory, used when no
// Redis instance is configured and in tests.
type MemoryShareStore struct {
	mu     sync.RWMutex
	tokens map[string]memoryShareEntry
}

type memoryShareEntry struct {
	tripID    uuid.UUID
	expiresAt time.Time
}

// NewMemoryShareStore creates a new in-memory share store.
func NewMemoryShareStore() *MemoryShareStore {
	return &MemoryShareStore{tokens: make(map[string]memoryShareEntry)}
}

// SaveShareToken records token -> trip id with a TTL.
func (s *MemoryShareStore) SaveShareToken(ctx context.Context, token string, tripID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryShareEntry{tripID: tripID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// ResolveShareToken returns the trip id for a live token. Expired entries are
// deleted on lookup so the fallback store does not grow unbounded.
func (s *MemoryShareStore) ResolveShareToken(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, domain.ErrShareNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.tokens, token)
		return uuid.Nil, domain.ErrShareNotFound
	}
	return entry.tripID, nil
}
