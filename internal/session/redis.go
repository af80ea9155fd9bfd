package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each slot under its own key with a TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client. Keys are "<prefix>session:<id>:<kind>".
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string, kind Kind) string {
	return fmt.Sprintf("%ssession:%s:%s", s.prefix, id, kind)
}

func (s *RedisStore) Put(ctx context.Context, id string, kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding session %s/%s: %w", id, kind, err)
	}
	if err := s.client.Set(ctx, s.key(id, kind), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing session %s/%s: %w", id, kind, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string, kind Kind, dst any) error {
	data, err := s.client.Get(ctx, s.key(id, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading session %s/%s: %w", id, kind, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding session %s/%s: %w", id, kind, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	keys := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		keys = append(keys, s.key(id, k))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
