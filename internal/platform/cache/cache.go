// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package cache is the read-through cache for slow-changing lists.

Two implementations exist: [Redis] when REDIS_URL is configured and [Noop]
otherwise. Cache failures never fail a request; callers fall back to the
database and the error is logged.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
)

// Cache stores JSON-encoded values by key.
type Cache interface {
	// GetJSON decodes the cached value into dst. It reports false on a miss.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// # Redis

// Redis is a [Cache] backed by go-redis.
type Redis struct {
	client goredis.UniversalClient
}

// NewRedis wraps an existing client.
func NewRedis(client goredis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache: delete: %w", err)
	}
	return nil
}

// # Noop

// Noop never stores anything.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                   { return nil }

// # Helpers

// Remember returns the cached value for key, or calls load and caches its result.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.GetJSON(ctx, key, &cached)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.SetJSON(ctx, key, value, ttl); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
	return value, nil
}

// Invalidate deletes keys and only logs failures.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_invalidate_failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}
