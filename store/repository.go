package store

import (
	"context"
	"errors"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionState is everything persisted for one browsing session: three
// independently serialized collections, loaded once at hydration and each
// rewritten in full on every change.
type SessionState struct {
	Cart     []models.CartItem
	Orders   []models.Order
	Wishlist []models.WishlistItem
}

// Repository persists session state. Save methods replace the whole
// collection for the session; partial updates are not part of the contract.
type Repository interface {
	CreateSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	ExpiredSessions(ctx context.Context, before time.Time) ([]string, error)

	LoadSession(ctx context.Context, sessionID string) (*SessionState, error)
	SaveCart(ctx context.Context, sessionID string, items []models.CartItem) error
	SaveOrders(ctx context.Context, sessionID string, orders []models.Order) error
	SaveWishlist(ctx context.Context, sessionID string, items []models.WishlistItem) error

	// SessionIDForOrder resolves the owning session of an order, for admin
	// actions that arrive without session context.
	SessionIDForOrder(ctx context.Context, orderID string) (string, error)
}
