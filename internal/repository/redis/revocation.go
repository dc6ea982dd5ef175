package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/security"
)

const revokedKeyPrefix = "revoked:"

// RevocationRegistry keeps revoked token keys in Redis with a TTL so every
// server instance sees the same revocations.
type RevocationRegistry struct {
	client redis.Cmdable
}

func NewRevocationRegistry(client redis.Cmdable) *RevocationRegistry {
	return &RevocationRegistry{client: client}
}

var _ security.RevocationRegistry = (*RevocationRegistry)(nil)

func (r *RevocationRegistry) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := revokedKeyPrefix + security.TokenKey(token)
	logger.ExternalServiceCall("redis", "SET", "key", key, "ttl", ttl)
	err := r.client.Set(ctx, key, 1, ttl).Err()
	logger.ExternalServiceResult("redis", "SET", err, "key", key)
	return err
}

func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := revokedKeyPrefix + security.TokenKey(token)
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.ExternalServiceResult("redis", "EXISTS", err, "key", key)
		return false, err
	}
	return n > 0, nil
}
