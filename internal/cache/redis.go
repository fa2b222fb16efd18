package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"storefront-api/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, userID uint) ([]*model.CartLine, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []*model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return lines, nil
}

// Version returns the user's cart write counter; 0 before the first write.
func (r *RedisCache) Version(ctx context.Context, userID uint) (int64, error) {
	v, err := r.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version failed: %w", err)
	}
	return v, nil
}

// Set stores the cart with the base TTL plus up to a minute of jitter so
// entries written together do not expire together. The write is skipped with
// ErrStaleVersion when the version key moved past version, either before the
// WATCH or while the transaction was queued.
func (r *RedisCache) Set(ctx context.Context, userID uint, version int64, lines []*model.CartLine) error {
	if lines == nil {
		lines = []*model.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Int63n(int64(time.Minute)))
	vKey := versionKey(userID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStaleVersion
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cartKey(userID), data, r.baseTTL+jitter)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleVersion), errors.Is(err, redis.TxFailedErr):
		return ErrStaleVersion
	default:
		return fmt.Errorf("redis set failed: %w", err)
	}
}

// Invalidate bumps the version and drops the cached cart atomically.
func (r *RedisCache) Invalidate(ctx context.Context, userID uint) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Del(ctx, cartKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func versionKey(userID uint) string {
	return fmt.Sprintf("cart:%d:version", userID)
}
