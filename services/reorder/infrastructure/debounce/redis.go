package debounce

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/restockd/pkg/cache"
)

const redisKeyPrefix = "reorder:attempt:"

// RedisStore is a Redis-backed DebounceStore. Attempt entries expire with a
// TTL equal to the cooldown window, so ShouldSkip reduces to a key-existence
// check. Entries survive process restarts and are shared across worker
// instances.
type RedisStore struct {
	client   *pkgcache.RedisClient
	cooldown time.Duration
}

// NewRedisStore returns a RedisStore with the given cooldown window.
func NewRedisStore(client *pkgcache.RedisClient, cooldown time.Duration) *RedisStore {
	return &RedisStore{client: client, cooldown: cooldown}
}

// ShouldSkip reports whether an unexpired attempt entry exists for itemID.
// The now parameter is unused: expiry is enforced by the key TTL.
func (s *RedisStore) ShouldSkip(ctx context.Context, itemID uuid.UUID, _ time.Time) (bool, error) {
	n, err := s.client.Client().Exists(ctx, s.key(itemID)).Result()
	if err != nil {
		return false, fmt.Errorf("debounce check: %w", err)
	}
	return n > 0, nil
}

// RecordAttempt writes the attempt timestamp with TTL = cooldown, overwriting
// any previous entry and restarting its expiry.
func (s *RedisStore) RecordAttempt(ctx context.Context, itemID uuid.UUID, now time.Time) error {
	err := s.client.Client().Set(ctx, s.key(itemID),
		now.UTC().Format(time.RFC3339Nano), s.cooldown).Err()
	if err != nil {
		return fmt.Errorf("debounce record: %w", err)
	}
	return nil
}

func (s *RedisStore) key(itemID uuid.UUID) string {
	return redisKeyPrefix + itemID.String()
}
