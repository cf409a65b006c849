package models

import "time"

// CartItem is one row of a session's cart. Position preserves insertion order
// across reloads; Total is derived from Price and Quantity and is recomputed
// on every quantity change.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"index" json:"-"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Stock     int       `json:"stock"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	Position  int       `json:"-"`
	AddedAt   time.Time `json:"added_at"`
}
