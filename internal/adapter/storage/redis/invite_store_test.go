package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteStore_PutAndExists(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewInviteStore(client)
	ctx := context.Background()

	challengeID, targetID := uuid.New(), uuid.New()

	ok, err := store.Exists(ctx, challengeID, targetID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, challengeID, targetID, time.Hour))

	ok, err = store.Exists(ctx, challengeID, targetID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInviteStore_Remove(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewInviteStore(client)
	ctx := context.Background()

	challengeID, targetID := uuid.New(), uuid.New()
	require.NoError(t, store.Put(ctx, challengeID, targetID, time.Hour))
	require.NoError(t, store.Remove(ctx, challengeID, targetID))

	ok, err := store.Exists(ctx, challengeID, targetID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is a no-op.
	require.NoError(t, store.Remove(ctx, challengeID, targetID))
}

func TestInviteStore_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewInviteStore(client)
	ctx := context.Background()

	challengeID, targetID := uuid.New(), uuid.New()
	require.NoError(t, store.Put(ctx, challengeID, targetID, time.Minute))

	s.FastForward(2 * time.Minute)

	ok, err := store.Exists(ctx, challengeID, targetID)
	require.NoError(t, err)
	assert.False(t, ok, "invitation should expire with the challenge")
}
