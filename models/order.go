package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting dispatch
	OrderStatusDispatched OrderStatus = "dispatched" // Handed to the courier
	OrderStatusDelivered  OrderStatus = "delivered"  // Courier reports delivery
	OrderStatusReceived   OrderStatus = "received"   // Customer confirmed receipt
	OrderStatusReturned   OrderStatus = "returned"   // Customer returned the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before dispatch

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	// Payment methods
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// DeliveryEstimate is added to the order time to produce the estimated
// delivery date.
const DeliveryEstimate = 7 * 24 * time.Hour

// legalTransitions is the full lifecycle. Anything not listed here is
// rejected by the store instead of being left to UI gating.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReceived, OrderStatusReturned},
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return len(legalTransitions[s]) == 0
}

// Address is used for both shipping and billing.
type Address struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Order struct {
	ID                 string        `gorm:"primaryKey" json:"id"`
	SessionID          string        `gorm:"index" json:"-"`
	Items              []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount        float64       `json:"total_amount"`
	Status             OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus      PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod      PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	ShippingAddress    Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress     Address       `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	CreatedAt          time.Time     `json:"created_at"`
	EstimatedDelivery  time.Time     `json:"estimated_delivery"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time    `json:"cancellation_date,omitempty"`
	ReturnReason       string        `json:"return_reason,omitempty"`
	ReturnDate         *time.Time    `json:"return_date,omitempty"`
}

// OrderItem is a snapshot of a cart item at order-creation time. It is
// deliberately decoupled from the live product row so historical orders
// stay stable when the catalog changes.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}
