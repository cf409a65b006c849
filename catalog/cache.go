package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// ProductCache holds recently resolved products.
type ProductCache interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context, id uint) (*models.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisCache) Set(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	// Jitter spreads expirations so a popular catalog page does not refill
	// the cache all at once.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, id uint) error {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}
