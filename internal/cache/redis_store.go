package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the record in Redis.
const DefaultRedisKey = "cur:eurofxref-daily"

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the record under a single Redis key without expiry;
// staleness is decided by the freshness policy, not by a TTL.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load returns the stored record, or ErrNotFound if the key is absent.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return raw, nil
}

// Save overwrites the record.
func (s *RedisStore) Save(ctx context.Context, raw []byte) error {
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
