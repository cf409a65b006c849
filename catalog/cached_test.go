package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	mu       sync.Mutex
	products map[uint]models.Product
	calls    atomic.Int64
}

func (c *countingCatalog) ProductByID(_ context.Context, id uint) (*models.Product, error) {
	c.calls.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

type mapCache struct {
	mu       sync.Mutex
	products map[uint]models.Product
}

func newMapCache() *mapCache {
	return &mapCache{products: make(map[uint]models.Product)}
}

func (m *mapCache) Get(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrCacheMiss
	}
	cp := p
	return &cp, nil
}

func (m *mapCache) Set(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = *product
	return nil
}

func (m *mapCache) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *mapCache) has(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.products[id]
	return ok
}

func TestCachedCatalogMissFillsCache(t *testing.T) {
	inner := &countingCatalog{products: map[uint]models.Product{
		1: {ID: 1, Name: "Mug", Price: 10},
	}}
	cache := newMapCache()
	cat := NewCachedCatalog(inner, cache, nil)

	got, err := cat.ProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)
	assert.Equal(t, int64(1), inner.calls.Load())

	// The fill is asynchronous.
	require.Eventually(t, func() bool { return cache.has(1) }, time.Second, 10*time.Millisecond)
}

func TestCachedCatalogServesHitsWithoutInner(t *testing.T) {
	inner := &countingCatalog{products: map[uint]models.Product{}}
	cache := newMapCache()
	require.NoError(t, cache.Set(context.Background(), &models.Product{ID: 1, Name: "Mug", Price: 10}))
	cat := NewCachedCatalog(inner, cache, nil)

	got, err := cat.ProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)
	assert.Equal(t, int64(0), inner.calls.Load())
}

func TestCachedCatalogPropagatesNotFound(t *testing.T) {
	inner := &countingCatalog{products: map[uint]models.Product{}}
	cat := NewCachedCatalog(inner, newMapCache(), nil)

	_, err := cat.ProductByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCachedCatalogCollapsesConcurrentMisses(t *testing.T) {
	inner := &countingCatalog{products: map[uint]models.Product{
		1: {ID: 1, Name: "Mug", Price: 10},
	}}
	cat := NewCachedCatalog(inner, newMapCache(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cat.ProductByID(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Singleflight may let a few calls through as flights complete, but a
	// 20-way stampede must not produce 20 lookups.
	assert.Less(t, inner.calls.Load(), int64(5))
}
