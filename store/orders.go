package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/google/uuid"
)

// CheckoutInput carries the address and payment data for order creation.
// A nil BillingAddress means billing equals shipping.
type CheckoutInput struct {
	ShippingAddress models.Address
	BillingAddress  *models.Address
	PaymentMethod   models.PaymentMethod
}

// generateOrderRef builds a human-inspectable order id from the creation
// time plus a random suffix. Collisions are treated as negligible.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateOrder snapshots the current cart into a new pending order and
// clears the cart: an order consumes the cart.
func (s *Session) CreateOrder(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	switch input.PaymentMethod {
	case models.PaymentMethodCard, models.PaymentMethodPaypal, models.PaymentMethodCOD:
	default:
		s.notify(Notice{Level: LevelError, Message: "Unsupported payment method"})
		return nil, ErrInvalidPaymentMethod
	}

	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Your cart is empty"})
		return nil, ErrEmptyCart
	}

	now := time.Now()
	items := make([]models.OrderItem, 0, len(s.cart))
	var total float64
	for _, ci := range s.cart {
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Price:     ci.Price,
			Image:     ci.Image,
			Quantity:  ci.Quantity,
			Total:     ci.Total,
		})
		total += ci.Total
	}

	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		billing = *input.BillingAddress
	}

	// Non-cod payment is assumed to succeed synchronously; only cash on
	// delivery starts unpaid.
	paymentStatus := models.PaymentStatusPaid
	if input.PaymentMethod == models.PaymentMethodCOD {
		paymentStatus = models.PaymentStatusPending
	}

	order := models.Order{
		ID:                generateOrderRef(),
		SessionID:         s.id,
		Items:             items,
		TotalAmount:       total,
		Status:            models.OrderStatusPending,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     input.PaymentMethod,
		ShippingAddress:   input.ShippingAddress,
		BillingAddress:    billing,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(models.DeliveryEstimate),
	}

	// Most-recent-first is the storage order by design.
	s.orders = append([]models.Order{order}, s.orders...)
	s.cart = nil
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.persistCart(ctx)
	s.metrics.CountOrder(ctx, total)
	s.notify(Notice{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Order %s placed", order.ID),
		OrderID: order.ID,
	})
	return &order, nil
}

// CancelOrder moves a pending order to cancelled, stamping reason and date
// together. Illegal transitions are rejected here, not left to UI gating.
func (s *Session) CancelOrder(ctx context.Context, orderID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		s.notify(Notice{Level: LevelError, Message: "A cancellation reason is required", OrderID: orderID})
		return ErrReasonRequired
	}

	s.mu.Lock()
	idx := s.findOrder(orderID)
	if idx < 0 {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Order not found", OrderID: orderID})
		return ErrOrderNotFound
	}
	order := &s.orders[idx]
	if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
		status := order.Status
		s.mu.Unlock()
		s.notify(Notice{
			Level:   LevelError,
			Message: fmt.Sprintf("A %s order cannot be cancelled", status),
			OrderID: orderID,
		})
		return ErrIllegalTransition
	}

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.CancellationReason = reason
	order.CancellationDate = &now
	if order.PaymentStatus == models.PaymentStatusPaid {
		order.PaymentStatus = models.PaymentStatusRefunded
	}
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.notify(Notice{Level: LevelSuccess, Message: "Order cancelled", OrderID: orderID})
	return nil
}

// ReturnOrder moves a delivered order to returned.
func (s *Session) ReturnOrder(ctx context.Context, orderID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		s.notify(Notice{Level: LevelError, Message: "A return reason is required", OrderID: orderID})
		return ErrReasonRequired
	}

	s.mu.Lock()
	idx := s.findOrder(orderID)
	if idx < 0 {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Order not found", OrderID: orderID})
		return ErrOrderNotFound
	}
	order := &s.orders[idx]
	if !order.Status.CanTransitionTo(models.OrderStatusReturned) {
		status := order.Status
		s.mu.Unlock()
		s.notify(Notice{
			Level:   LevelError,
			Message: fmt.Sprintf("A %s order cannot be returned", status),
			OrderID: orderID,
		})
		return ErrIllegalTransition
	}

	now := time.Now()
	order.Status = models.OrderStatusReturned
	order.ReturnReason = reason
	order.ReturnDate = &now
	if order.PaymentStatus == models.PaymentStatusPaid {
		order.PaymentStatus = models.PaymentStatusRefunded
	}
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.notify(Notice{Level: LevelSuccess, Message: "Return registered", OrderID: orderID})
	return nil
}

// AdvanceOrder is the admin path through the same lifecycle:
// pending → dispatched → delivered.
func (s *Session) AdvanceOrder(ctx context.Context, orderID string, next models.OrderStatus) error {
	if next != models.OrderStatusDispatched && next != models.OrderStatusDelivered {
		return ErrIllegalTransition
	}

	s.mu.Lock()
	idx := s.findOrder(orderID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrOrderNotFound
	}
	order := &s.orders[idx]
	if !order.Status.CanTransitionTo(next) {
		s.mu.Unlock()
		return ErrIllegalTransition
	}
	order.Status = next
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.notify(Notice{
		Level:   LevelInfo,
		Message: fmt.Sprintf("Order %s is now %s", orderID, next),
		OrderID: orderID,
	})
	return nil
}

// ConfirmReceived is a two-phase operation: the received status is applied
// optimistically, confirmed upstream, and reverted if confirmation fails.
func (s *Session) ConfirmReceived(ctx context.Context, orderID string) error {
	s.mu.Lock()
	idx := s.findOrder(orderID)
	if idx < 0 {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Order not found", OrderID: orderID})
		return ErrOrderNotFound
	}
	order := &s.orders[idx]
	if !order.Status.CanTransitionTo(models.OrderStatusReceived) {
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Only delivered orders can be confirmed", OrderID: orderID})
		return ErrIllegalTransition
	}
	order.Status = models.OrderStatusReceived
	s.mu.Unlock()

	if err := s.mirror.ConfirmReceipt(ctx, orderID); err != nil {
		s.mu.Lock()
		if idx = s.findOrder(orderID); idx >= 0 {
			s.orders[idx].Status = models.OrderStatusDelivered
		}
		s.mu.Unlock()
		s.notify(Notice{Level: LevelError, Message: "Could not confirm receipt, please try again", OrderID: orderID})
		return fmt.Errorf("%w: %v", ErrMirrorUnavailable, err)
	}

	s.mu.Lock()
	if idx = s.findOrder(orderID); idx >= 0 {
		order := &s.orders[idx]
		if order.PaymentMethod == models.PaymentMethodCOD && order.PaymentStatus == models.PaymentStatusPending {
			order.PaymentStatus = models.PaymentStatusPaid
		}
	}
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.notify(Notice{Level: LevelSuccess, Message: "Thanks for confirming your delivery", OrderID: orderID})
	return nil
}

// SetPaymentStatus is an admin override for the payment overlay.
func (s *Session) SetPaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
	default:
		return fmt.Errorf("invalid payment status %q", status)
	}

	s.mu.Lock()
	idx := s.findOrder(orderID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrOrderNotFound
	}
	s.orders[idx].PaymentStatus = status
	s.mu.Unlock()

	s.persistOrders(ctx)
	s.notify(Notice{
		Level:   LevelInfo,
		Message: fmt.Sprintf("Payment for order %s marked %s", orderID, status),
		OrderID: orderID,
	})
	return nil
}

// Orders returns a copy of the order list, most recent first.
func (s *Session) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID returns a copy of the matching order.
func (s *Session) OrderByID(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.findOrder(orderID); idx >= 0 {
		return s.orders[idx], true
	}
	return models.Order{}, false
}

// findOrder returns the index of the order, or -1. Callers must hold s.mu.
func (s *Session) findOrder(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}
