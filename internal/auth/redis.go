package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces user secrets within a shared Redis instance.
const redisKeyPrefix = "gatehouse:user:"

// RedisStore reads credentials from Redis. Every verification is a fresh
// GET, so secrets written or deleted by a provisioning system take effect on
// the next request without any gateway-side cache to invalidate.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Put adds a user or replaces an existing user's secret.
func (s *RedisStore) Put(ctx context.Context, username string, secret string) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+username, secret, 0).Err(); err != nil {
		return fmt.Errorf("store user %q: %w", username, err)
	}
	return nil
}

// Remove deletes a user. Removing an absent user is a no-op.
func (s *RedisStore) Remove(ctx context.Context, username string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+username).Err(); err != nil {
		return fmt.Errorf("remove user %q: %w", username, err)
	}
	return nil
}

// Verify reports whether the pair matches a stored entry. Lookup failures
// other than a missing key are logged and count as a rejection.
func (s *RedisStore) Verify(ctx context.Context, username string, password string) bool {
	secret, err := s.rdb.Get(ctx, redisKeyPrefix+username).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Error("lookup user secret", "user", username, "err", err)
		return false
	}

	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
