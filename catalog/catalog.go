package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/furqanahmad03/e-store-api/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("product not found")

// Catalog resolves product details for cart operations.
type Catalog interface {
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
}

// GormCatalog reads products straight from the database.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (g *GormCatalog) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := g.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	return &product, nil
}
