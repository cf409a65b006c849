package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	SalePrice   float64        `json:"sale_price"`
	Image       string         `gorm:"not null" json:"image"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Category    string         `gorm:"index" json:"category"`
	Subcategory string         `json:"subcategory"`
	Brand       string         `json:"brand"`
	Rating      float64        `json:"rating"`
	Stock       int            `json:"stock"`
	OnSale      bool           `json:"on_sale"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is what the customer pays right now.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
