package store

import (
	"context"
	"sync"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
)

// MemoryRepository keeps session state in process memory. It backs tests
// and local development; state is deep-copied on the way in and out so
// callers cannot alias the stored collections.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	states   map[string]*SessionState
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.Session),
		states:   make(map[string]*SessionState),
	}
}

func (r *MemoryRepository) CreateSession(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemoryRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	delete(r.states, sessionID)
	return nil
}

func (r *MemoryRepository) ExpiredSessions(_ context.Context, before time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, s := range r.sessions {
		if s.ExpiresAt.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) LoadSession(_ context.Context, sessionID string) (*SessionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[sessionID]
	if !ok {
		return &SessionState{}, nil
	}
	return copyState(state), nil
}

func (r *MemoryRepository) SaveCart(_ context.Context, sessionID string, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state(sessionID)
	state.Cart = append([]models.CartItem(nil), items...)
	return nil
}

func (r *MemoryRepository) SaveOrders(_ context.Context, sessionID string, orders []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state(sessionID)
	state.Orders = copyOrders(orders)
	return nil
}

func (r *MemoryRepository) SaveWishlist(_ context.Context, sessionID string, items []models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state(sessionID)
	state.Wishlist = append([]models.WishlistItem(nil), items...)
	return nil
}

func (r *MemoryRepository) SessionIDForOrder(_ context.Context, orderID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sessionID, state := range r.states {
		for _, o := range state.Orders {
			if o.ID == orderID {
				return sessionID, nil
			}
		}
	}
	return "", ErrOrderNotFound
}

// state returns the mutable state entry; callers must hold r.mu.
func (r *MemoryRepository) state(sessionID string) *SessionState {
	s, ok := r.states[sessionID]
	if !ok {
		s = &SessionState{}
		r.states[sessionID] = s
	}
	return s
}

func copyState(state *SessionState) *SessionState {
	return &SessionState{
		Cart:     append([]models.CartItem(nil), state.Cart...),
		Orders:   copyOrders(state.Orders),
		Wishlist: append([]models.WishlistItem(nil), state.Wishlist...),
	}
}

func copyOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o
		out[i].Items = append([]models.OrderItem(nil), o.Items...)
	}
	return out
}
