package store

import (
	"context"
	"sync"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/models"
)

// Shared fakes for the store tests.

type fakeCatalog struct {
	mu       sync.Mutex
	products map[uint]models.Product
	err      error
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	f := &fakeCatalog{products: make(map[uint]models.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) ProductByID(_ context.Context, id uint) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeCatalog) set(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
}

type fakeMirror struct {
	mu         sync.Mutex
	syncErr    error
	dropErr    error
	confirmErr error
	synced     []uint
	dropped    []uint
	confirmed  []string
}

func (f *fakeMirror) SyncItem(_ context.Context, _ string, item models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.syncErr != nil {
		return f.syncErr
	}
	f.synced = append(f.synced, item.ProductID)
	return nil
}

func (f *fakeMirror) DropItem(_ context.Context, _ string, productID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dropErr != nil {
		return f.dropErr
	}
	f.dropped = append(f.dropped, productID)
	return nil
}

func (f *fakeMirror) ConfirmReceipt(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, orderID)
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(_ string, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

type testEnv struct {
	repo     *MemoryRepository
	catalog  *fakeCatalog
	mirror   *fakeMirror
	notifier *recordingNotifier
}

func newTestEnv(products ...models.Product) *testEnv {
	return &testEnv{
		repo:     NewMemoryRepository(),
		catalog:  newFakeCatalog(products...),
		mirror:   &fakeMirror{},
		notifier: &recordingNotifier{},
	}
}

func (e *testEnv) session(id string) *Session {
	return NewSession(id, e.repo, e.catalog, e.mirror, e.notifier, nil)
}
