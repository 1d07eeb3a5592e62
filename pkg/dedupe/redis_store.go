package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares seen keys between instances with SET NX.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (rs *RedisStore) Acquire(ctx context.Context, key string) (bool, error) {
	return rs.client.SetNX(ctx, key, 1, rs.ttl).Result()
}

func (rs *RedisStore) Release(ctx context.Context, key string) error {
	return rs.client.Del(ctx, key).Err()
}
