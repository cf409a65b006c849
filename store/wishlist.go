package store

import (
	"context"
	"fmt"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
)

// AddToWishlist saves a product snapshot. Product id is unique within the
// wishlist; a duplicate add is reported, not appended.
func (s *Session) AddToWishlist(ctx context.Context, product models.Product) error {
	s.mu.Lock()
	for _, w := range s.wishlist {
		if w.ProductID == product.ID {
			s.mu.Unlock()
			s.notify(Notice{
				Level:     LevelInfo,
				Message:   fmt.Sprintf("%s is already in your wishlist", product.Name),
				ProductID: product.ID,
			})
			return ErrAlreadyInWishlist
		}
	}

	images := product.Images
	if len(images) == 0 && product.Image != "" {
		images = []string{product.Image}
	}
	s.wishlist = append(s.wishlist, models.WishlistItem{
		SessionID:   s.id,
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.EffectivePrice(),
		Image:       product.Image,
		Images:      images,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		Brand:       product.Brand,
		Rating:      product.Rating,
		Stock:       product.Stock,
		OnSale:      product.OnSale,
		AddedAt:     time.Now(),
	})
	s.mu.Unlock()

	s.persistWishlist(ctx)
	s.notify(Notice{
		Level:     LevelSuccess,
		Message:   fmt.Sprintf("%s added to wishlist", product.Name),
		ProductID: product.ID,
	})
	return nil
}

// RemoveFromWishlist filters out the matching product id.
func (s *Session) RemoveFromWishlist(ctx context.Context, productID uint) error {
	s.mu.Lock()
	kept := s.wishlist[:0]
	var removed string
	for _, w := range s.wishlist {
		if w.ProductID == productID {
			removed = w.Name
			continue
		}
		kept = append(kept, w)
	}
	s.wishlist = kept
	s.mu.Unlock()

	if removed == "" {
		return nil
	}

	s.persistWishlist(ctx)
	s.notify(Notice{
		Level:     LevelInfo,
		Message:   fmt.Sprintf("%s removed from wishlist", removed),
		ProductID: productID,
	})
	return nil
}

// IsInWishlist is the membership predicate used by product cards.
func (s *Session) IsInWishlist(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wishlist {
		if w.ProductID == productID {
			return true
		}
	}
	return false
}

// WishlistCount reports 0 until hydration has completed.
func (s *Session) WishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return 0
	}
	return len(s.wishlist)
}

// Wishlist returns a copy of the wishlist.
func (s *Session) Wishlist() []models.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WishlistItem, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}
