package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps each session in one hash whose expiry slides forward on
// every access.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Open(id string) Session {
	return &redisSession{store: s, id: id}
}

type redisSession struct {
	store *RedisStore
	id    string
}

func (r *redisSession) ID() string { return r.id }

func (r *redisSession) key() string { return keyPrefix + r.id }

func (r *redisSession) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.store.rdb.HGet(ctx, r.key(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis hget: %w", err)
	}
	if err := r.store.rdb.Expire(ctx, r.key(), r.store.ttl).Err(); err != nil {
		return false, fmt.Errorf("redis expire: %w", err)
	}
	if err := decode(key, data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisSession) Set(ctx context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	_, err = r.store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key(), key, data)
		pipe.Expire(ctx, r.key(), r.store.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (r *redisSession) Clear(ctx context.Context, key string) error {
	if err := r.store.rdb.HDel(ctx, r.key(), key).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (r *redisSession) Destroy(ctx context.Context) error {
	if err := r.store.rdb.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
