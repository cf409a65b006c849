package models

import "time"

// Session is one browsing session. Its cart, orders and wishlist rows are
// keyed by ID; expired sessions are swept together with their state.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
