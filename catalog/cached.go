package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/furqanahmad03/e-store-api/metrics"
	"github.com/furqanahmad03/e-store-api/models"
	"golang.org/x/sync/singleflight"
)

// CachedCatalog wraps another Catalog with a product cache. Concurrent
// misses for the same id are collapsed through singleflight so a stampede
// hits the database once.
type CachedCatalog struct {
	inner   Catalog
	cache   ProductCache
	metrics *metrics.AppMetrics
	sfg     singleflight.Group
}

func NewCachedCatalog(inner Catalog, cache ProductCache, m *metrics.AppMetrics) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		cache:   cache,
		metrics: m,
	}
}

func (c *CachedCatalog) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	v, err, _ := c.sfg.Do(fmt.Sprint(id), func() (interface{}, error) {
		product, err := c.cache.Get(ctx, id)
		if err == nil {
			c.metrics.CountCacheHit(ctx)
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("product cache get error: %v", err)
		}
		c.metrics.CountCacheMiss(ctx)

		product, err = c.inner.ProductByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := c.cache.Set(context.Background(), product); errSet != nil {
				log.Printf("product cache set error: %v", errSet)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}
