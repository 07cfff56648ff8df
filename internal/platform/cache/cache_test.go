// Copyright (c) 2026 Dugout. All rights reserved.

package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/platform/cache"
)

// memoryCache is an in-process Cache used to observe Remember.
type memoryCache struct {
	values  map[string][]byte
	readErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if m.readErr != nil {
		return false, m.readErr
	}
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	m.values[key] = raw
	return err
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCache()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"Hitting", "Pitching"}, nil
	}

	first, err := cache.Remember(ctx, store, "categories", time.Minute, load)
	require.NoError(t, err)
	second, err := cache.Remember(ctx, store, "categories", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	cache.Invalidate(ctx, store, "categories")
	_, err = cache.Remember(ctx, store, "categories", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ReadFailureFallsBackToLoad(t *testing.T) {
	store := newMemoryCache()
	store.readErr = errors.New("connection refused")

	got, err := cache.Remember(context.Background(), store, "tags", time.Minute, func(context.Context) ([]string, error) {
		return []string{"bunting"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"bunting"}, got)
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	store := newMemoryCache()
	boom := errors.New("db down")

	_, err := cache.Remember(context.Background(), store, "tags", time.Minute, func(context.Context) ([]string, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.values)
}

func TestNoop(t *testing.T) {
	var c cache.Cache = cache.Noop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 1, time.Minute))
	var dst int
	hit, err := c.GetJSON(ctx, "k", &dst)
	require.NoError(t, err)
	assert.False(t, hit)
}
