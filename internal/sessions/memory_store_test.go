package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	token, err := s.Create(ctx, "user-1")
	require.NoError(t, err)

	userID, err := s.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, s.Delete(ctx, token))
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	token, err := s.Create(ctx, "user-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
