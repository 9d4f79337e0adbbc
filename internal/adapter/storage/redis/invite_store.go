package redis

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// InviteStore implements ports.InviteStore. A targeted challenge leaves one
// key per outstanding invitation; ignoring the challenge deletes the key so
// the invitation disappears from the target's pending notifications. Keys
// expire with the challenge, so settled or swept challenges clean up on
// their own.
type InviteStore struct {
	client *goredis.Client
	prefix string
}

// NewInviteStore creates a new Redis-backed invite store.
func NewInviteStore(client *goredis.Client) *InviteStore {
	return &InviteStore{
		client: client,
		prefix: "invite:",
	}
}

func (s *InviteStore) key(challengeID, targetID uuid.UUID) string {
	return s.prefix + challengeID.String() + ":" + targetID.String()
}

// Put records an outstanding invitation with the challenge's remaining TTL.
func (s *InviteStore) Put(ctx context.Context, challengeID, targetID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(challengeID, targetID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis invite put: %w", err)
	}
	return nil
}

// Remove withdraws an invitation. Removing a missing key is a no-op.
func (s *InviteStore) Remove(ctx context.Context, challengeID, targetID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(challengeID, targetID)).Err(); err != nil {
		return fmt.Errorf("redis invite remove: %w", err)
	}
	return nil
}

// Exists reports whether the invitation is still outstanding.
func (s *InviteStore) Exists(ctx context.Context, challengeID, targetID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(challengeID, targetID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis invite exists: %w", err)
	}
	return n == 1, nil
}
