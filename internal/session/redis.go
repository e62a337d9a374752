package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cartField = "cart_id"

// RedisStore keeps one hash per session token. The hash carries a single
// field relevant to this service, the cart id; the TTL rides on the key.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisStore) Get(ctx context.Context, token string) (string, bool, error) {
	value, err := s.rdb.HGet(ctx, sessionKey(token), cartField).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token, value string, ttl time.Duration) error {
	key := sessionKey(token)
	if err := s.rdb.HSet(ctx, key, cartField, value).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.HDel(ctx, sessionKey(token), cartField).Err()
}
