package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/backend/internal/domain"
)

func TestMemoryShareStore_RoundTrip(t *testing.T) {
	store := NewMemoryShareStore()
	tripID := uuid.New()

	require.NoError(t, store.SaveShareToken(context.Background(), "token-a", tripID, time.Hour))

	got, err := store.ResolveShareToken(context.Background(), "token-a")
	require.NoError(t, err)
	assert.Equal(t, tripID, got)
}

func TestMemoryShareStore_UnknownToken(t *testing.T) {
	store := NewMemoryShareStore()

	_, err := store.ResolveShareToken(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrShareNotFound)
}

func TestMemoryShareStore_ExpiredTokenIsRemoved(t *testing.T) {
	store := NewMemoryShareStore()
	require.NoError(t, store.SaveShareToken(context.Background(), "stale", uuid.New(), -time.Second))

	_, err := store.ResolveShareToken(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrShareNotFound)

	store.mu.RLock()
	_, still := store.tokens["stale"]
	store.mu.RUnlock()
	assert.False(t, still, "expired entry must be dropped on lookup")
}
