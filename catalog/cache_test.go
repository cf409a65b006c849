package catalog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/furqanahmad03/e-store-api/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	product := &models.Product{
		ID:     1,
		Name:   "Mug",
		Price:  10,
		Images: []string{"a.jpg", "b.jpg"},
		Stock:  5,
	}

	_, err := cache.Get(ctx, 1)
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, product))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, product.Price, got.Price)
	assert.Equal(t, product.Images, got.Images)
}

func TestRedisCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &models.Product{ID: 2, Name: "Plate", Price: 5}))
	require.NoError(t, cache.Delete(ctx, 2))

	_, err := cache.Get(ctx, 2)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &models.Product{ID: 3, Name: "Lamp", Price: 40}))
	mr.FastForward(cache.baseTTL * 2)

	_, err := cache.Get(ctx, 3)
	require.ErrorIs(t, err, ErrCacheMiss)
}
