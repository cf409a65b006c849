// Package mirror keeps a best-effort server-side copy of cart state in an
// upstream commerce API. Local state stays the source of truth for
// rendering; only adding to the cart is gated on the mirror answering.
package mirror

import (
	"context"

	"github.com/furqanahmad03/e-store-api/models"
)

type Mirror interface {
	// SyncItem upserts one cart line, keyed by product id.
	SyncItem(ctx context.Context, sessionID string, item models.CartItem) error
	// DropItem removes one cart line.
	DropItem(ctx context.Context, sessionID string, productID uint) error
	// ConfirmReceipt acknowledges customer receipt of an order.
	ConfirmReceipt(ctx context.Context, orderID string) error
}

// Noop is used when no upstream is configured.
type Noop struct{}

func (Noop) SyncItem(context.Context, string, models.CartItem) error { return nil }
func (Noop) DropItem(context.Context, string, uint) error            { return nil }
func (Noop) ConfirmReceipt(context.Context, string) error            { return nil }
