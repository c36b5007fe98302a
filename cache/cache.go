// Package cache is a thin JSON cache over redis used for catalog reads. A nil
// *Cache is valid and behaves as a permanent miss, so handlers never need to
// know whether caching is enabled.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotel-booking/config"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg config.Redis) *Cache {
	if !cfg.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})

	return &Cache{rdb: rdb, ttl: cfg.TTL}
}

// Get loads the value under key into dst. The boolean reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache key[%s]: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decoding cache key[%s]: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, val any) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding cache key[%s]: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache key[%s]: %w", key, err)
	}
	return nil
}

func (c *Cache) Drop(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("dropping cache keys: %w", err)
	}
	return nil
}
