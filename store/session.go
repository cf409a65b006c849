package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/metrics"
	"github.com/furqanahmad03/e-store-api/mirror"
	"github.com/furqanahmad03/e-store-api/models"
)

// Session is the state container for one browsing session: cart, orders and
// wishlist, hydrated once from the repository and written back collection by
// collection on every mutation. It is the only owner of that state; pages
// read derived values and call the mutation operations.
type Session struct {
	id       string
	repo     Repository
	catalog  catalog.Catalog
	mirror   mirror.Mirror
	notifier Notifier
	metrics  *metrics.AppMetrics

	mu       sync.Mutex
	hydrated bool
	cart     []models.CartItem
	orders   []models.Order
	wishlist []models.WishlistItem

	// Cart operations await catalog and mirror round-trips; per-product
	// locks keep two in-flight operations on the same product id from
	// interleaving.
	locksMu      sync.Mutex
	productLocks map[uint]*sync.Mutex
}

func NewSession(id string, repo Repository, cat catalog.Catalog, mir mirror.Mirror, notifier Notifier, m *metrics.AppMetrics) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if mir == nil {
		mir = mirror.Noop{}
	}
	return &Session{
		id:           id,
		repo:         repo,
		catalog:      cat,
		mirror:       mir,
		notifier:     notifier,
		metrics:      m,
		productLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *Session) ID() string { return s.id }

// Hydrate loads the persisted collections. It runs once; later calls are
// no-ops. Until it has run, CartCount and WishlistCount report zero.
func (s *Session) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return nil
	}

	state, err := s.repo.LoadSession(ctx, s.id)
	if err != nil {
		return fmt.Errorf("hydrate session %s: %w", s.id, err)
	}
	normalize(state)

	s.cart = state.Cart
	s.orders = state.Orders
	s.wishlist = state.Wishlist
	s.hydrated = true
	return nil
}

// normalize applies defensive defaults to persisted state so older rows
// with missing fields load cleanly.
func normalize(state *SessionState) {
	for i := range state.Wishlist {
		if len(state.Wishlist[i].Images) == 0 && state.Wishlist[i].Image != "" {
			state.Wishlist[i].Images = []string{state.Wishlist[i].Image}
		}
	}
	for i := range state.Cart {
		if state.Cart[i].Total == 0 && state.Cart[i].Quantity > 0 {
			state.Cart[i].Total = state.Cart[i].Price * float64(state.Cart[i].Quantity)
		}
	}
}

// AddToCart resolves the product and appends it to the cart, or merges
// quantities when the product is already there. The mirror call is gating:
// if the upstream copy cannot be written, nothing is added locally.
func (s *Session) AddToCart(ctx context.Context, productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	unlock := s.lockProduct(productID)
	defer unlock()

	s.mu.Lock()
	if idx := s.findCartItem(productID); idx >= 0 {
		current := s.cart[idx].Quantity
		s.mu.Unlock()
		return s.setQuantity(ctx, productID, current+quantity, true)
	}
	s.mu.Unlock()

	item, err := s.resolveProduct(ctx, productID)
	if err != nil {
		s.notify(Notice{Level: LevelError, Message: "Product not found", ProductID: productID})
		return err
	}
	if quantity > item.Stock {
		s.notify(Notice{
			Level:     LevelWarning,
			Message:   fmt.Sprintf("Only %d of %s in stock", item.Stock, item.Name),
			ProductID: productID,
		})
		return ErrQuantityExceedsStock
	}

	item.Quantity = quantity
	item.Total = item.Price * float64(quantity)
	item.AddedAt = time.Now()

	if err := s.mirror.SyncItem(ctx, s.id, *item); err != nil {
		s.notify(Notice{Level: LevelError, Message: "Could not add to cart, please try again", ProductID: productID})
		return fmt.Errorf("%w: %v", ErrMirrorUnavailable, err)
	}

	s.mu.Lock()
	item.Position = len(s.cart)
	s.cart = append(s.cart, *item)
	s.mu.Unlock()

	s.persistCart(ctx)
	s.metrics.CountCartAdd(ctx, quantity)
	s.notify(Notice{
		Level:     LevelSuccess,
		Message:   fmt.Sprintf("%s added to cart", item.Name),
		ProductID: productID,
	})
	return nil
}

// resolveProduct looks the product up in the catalog, falling back to the
// wishlist snapshot for items that only exist there anymore.
func (s *Session) resolveProduct(ctx context.Context, productID uint) (*models.CartItem, error) {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err == nil {
		return &models.CartItem{
			SessionID: s.id,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Image:     product.Image,
			Stock:     product.Stock,
		}, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, fmt.Errorf("catalog lookup for product %d: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wishlist {
		if w.ProductID == productID {
			return &models.CartItem{
				SessionID: s.id,
				ProductID: w.ProductID,
				Name:      w.Name,
				Price:     w.Price,
				Image:     w.Image,
				Stock:     w.Stock,
			}, nil
		}
	}
	return nil, ErrProductNotFound
}

// UpdateQuantity sets the quantity of an item already in the cart.
// Quantities below 1 are a validation failure; removal is RemoveFromCart.
func (s *Session) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	unlock := s.lockProduct(productID)
	defer unlock()
	return s.setQuantity(ctx, productID, quantity, false)
}

func (s *Session) setQuantity(ctx context.Context, productID uint, quantity int, merging bool) error {
	s.mu.Lock()
	idx := s.findCartItem(productID)
	if idx < 0 {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Item is not in your cart", ProductID: productID})
		return ErrItemNotFound
	}
	item := s.cart[idx]
	s.mu.Unlock()

	if quantity < 1 {
		s.notify(Notice{Level: LevelError, Message: "Quantity must be at least 1", ProductID: productID})
		return ErrQuantityTooLow
	}
	if quantity > item.Stock {
		msg := fmt.Sprintf("Only %d of %s in stock", item.Stock, item.Name)
		if merging {
			msg = fmt.Sprintf("Cannot add more, only %d of %s in stock", item.Stock, item.Name)
		}
		s.notify(Notice{Level: LevelWarning, Message: msg, ProductID: productID})
		return ErrQuantityExceedsStock
	}

	item.Quantity = quantity
	item.Total = item.Price * float64(quantity)

	// Best effort: local state is the source of truth for rendering.
	if err := s.mirror.SyncItem(ctx, s.id, item); err != nil {
		log.Printf("cart mirror sync failed for product %d: %v", productID, err)
	}

	s.mu.Lock()
	if idx = s.findCartItem(productID); idx >= 0 {
		s.cart[idx].Quantity = item.Quantity
		s.cart[idx].Total = item.Total
	}
	s.mu.Unlock()

	s.persistCart(ctx)
	if merging {
		s.metrics.CountCartAdd(ctx, quantity)
	}
	s.notify(Notice{
		Level:     LevelSuccess,
		Message:   fmt.Sprintf("%s quantity updated to %d", item.Name, quantity),
		ProductID: productID,
	})
	return nil
}

// RemoveFromCart removes the matching item if present.
func (s *Session) RemoveFromCart(ctx context.Context, productID uint) error {
	unlock := s.lockProduct(productID)
	defer unlock()

	s.mu.Lock()
	idx := s.findCartItem(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	name := s.cart[idx].Name
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	for i := range s.cart {
		s.cart[i].Position = i
	}
	s.mu.Unlock()

	if err := s.mirror.DropItem(ctx, s.id, productID); err != nil {
		log.Printf("cart mirror drop failed for product %d: %v", productID, err)
	}

	s.persistCart(ctx)
	s.notify(Notice{
		Level:     LevelInfo,
		Message:   fmt.Sprintf("%s removed from cart", name),
		ProductID: productID,
	})
	return nil
}

// ClearCart empties the cart.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()

	s.persistCart(ctx)
	s.notify(Notice{Level: LevelInfo, Message: "Cart cleared"})
	return nil
}

// CartItems returns a copy of the cart in insertion order.
func (s *Session) CartItems() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal is the sum of item totals, recomputed on every call.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CartCount is the sum of item quantities. It reports 0 until hydration has
// completed so consumers never render stale counts.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return 0
	}
	var count int
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// findCartItem returns the index of the product in the cart, or -1.
// Callers must hold s.mu.
func (s *Session) findCartItem(productID uint) int {
	for i, item := range s.cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Session) lockProduct(productID uint) func() {
	s.locksMu.Lock()
	l, ok := s.productLocks[productID]
	if !ok {
		l = &sync.Mutex{}
		s.productLocks[productID] = l
	}
	s.locksMu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *Session) notify(n Notice) {
	s.notifier.Notify(s.id, n)
}

func (s *Session) persistCart(ctx context.Context) {
	s.mu.Lock()
	items := make([]models.CartItem, len(s.cart))
	copy(items, s.cart)
	s.mu.Unlock()
	if err := s.repo.SaveCart(ctx, s.id, items); err != nil {
		log.Printf("persist cart for session %s: %v", s.id, err)
	}
}

func (s *Session) persistOrders(ctx context.Context) {
	s.mu.Lock()
	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	s.mu.Unlock()
	if err := s.repo.SaveOrders(ctx, s.id, orders); err != nil {
		log.Printf("persist orders for session %s: %v", s.id, err)
	}
}

func (s *Session) persistWishlist(ctx context.Context) {
	s.mu.Lock()
	items := make([]models.WishlistItem, len(s.wishlist))
	copy(items, s.wishlist)
	s.mu.Unlock()
	if err := s.repo.SaveWishlist(ctx, s.id, items); err != nil {
		log.Printf("persist wishlist for session %s: %v", s.id, err)
	}
}
