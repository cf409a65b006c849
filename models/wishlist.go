package models

import (
	"time"

	"github.com/lib/pq"
)

// WishlistItem is a saved-for-later product snapshot. There is no quantity:
// membership is presence/absence, keyed by product id.
type WishlistItem struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	SessionID   string         `gorm:"index" json:"-"`
	ProductID   uint           `gorm:"index" json:"product_id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Image       string         `json:"image"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
	Brand       string         `json:"brand"`
	Rating      float64        `json:"rating"`
	Stock       int            `json:"stock"`
	OnSale      bool           `json:"on_sale"`
	AddedAt     time.Time      `json:"date_added"`
}
