package repository_test

import (
	"context"
	"testing"
	"time"

	"studentportal/domain"
	"studentportal/services/registration/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listKey = "cache:all_registrations"

func newTestCache(t *testing.T, ttl time.Duration) (domain.RegistrationCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return repository.NewRegistrationCache(rdb, ttl), mr
}

func sampleRegistration() domain.Registration {
	reg := domain.NewRegistration(domain.Document{
		"fullName": "Ann",
		"course":   "B.Sc",
		"skills":   []interface{}{"HTML", "CSS"},
	})
	reg.ID = "0190a0b0-0000-7000-8000-000000000001"
	reg.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reg.UpdatedAt = reg.CreatedAt
	return *reg
}

func TestCache_MissOnEmpty(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	regs, ok, err := cache.GetAll(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, regs)
}

func TestCache_SetAllThenGetAll(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.SetAll(ctx, gen, []domain.Registration{sampleRegistration()}))

	regs, ok, err := cache.GetAll(ctx)

	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, regs, 1)
	flat := regs[0].Flatten()
	assert.Equal(t, "0190a0b0-0000-7000-8000-000000000001", flat[domain.KeyID])
	assert.Equal(t, "2024-05-01T12:00:00Z", flat[domain.KeyCreatedAt])
	assert.Equal(t, "Ann", flat["fullName"])
	assert.Equal(t, "B.Sc", regs[0].Course)
	assert.Equal(t, []interface{}{"HTML", "CSS"}, flat["skills"])
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	require.NoError(t, cache.SetAll(ctx, 0, nil))

	regs, ok, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, regs)
}

func TestCache_SetAllAppliesTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 30*time.Second)

	require.NoError(t, cache.SetAll(ctx, 0, []domain.Registration{sampleRegistration()}))
	assert.Equal(t, 30*time.Second, mr.TTL(listKey))

	mr.FastForward(31 * time.Second)

	_, ok, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_InvalidateDropsListAndAdvancesGeneration(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, cache.SetAll(ctx, 0, []domain.Registration{sampleRegistration()}))
	require.NoError(t, cache.Invalidate(ctx))

	assert.False(t, mr.Exists(listKey))
	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestCache_FillFromBeforeInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	// A reader takes the generation and its store snapshot, then a write lands.
	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	snapshot := []domain.Registration{}
	require.NoError(t, cache.Invalidate(ctx))

	require.NoError(t, cache.SetAll(ctx, gen, snapshot))

	assert.False(t, mr.Exists(listKey))
	_, ok, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.GetAll(ctx)
	assert.Error(t, err)
	_, err = cache.Generation(ctx)
	assert.Error(t, err)
	assert.Error(t, cache.Invalidate(ctx))
	assert.Error(t, cache.SetAll(ctx, 0, nil))
}
