package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"gorm.io/gorm"
)

// GormRepository persists session state in Postgres. Each Save method
// rewrites the session's collection in full inside one transaction, which
// matches how small session-scoped collections are actually used here.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateSession(ctx context.Context, s *models.Session) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := deleteSessionOrders(tx, sessionID); err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sessionID).Delete(&models.Session{}).Error
	})
}

func (r *GormRepository) ExpiredSessions(ctx context.Context, before time.Time) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("expires_at < ?", before).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list expired sessions: %w", err)
	}
	return ids, nil
}

func (r *GormRepository) LoadSession(ctx context.Context, sessionID string) (*SessionState, error) {
	db := r.db.WithContext(ctx)
	state := &SessionState{}

	if err := db.Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&state.Cart).Error; err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := db.Where("session_id = ?", sessionID).
		Preload("Items").
		Order("created_at DESC").
		Find(&state.Orders).Error; err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if err := db.Where("session_id = ?", sessionID).
		Order("added_at ASC").
		Find(&state.Wishlist).Error; err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return state, nil
}

func (r *GormRepository) SaveCart(ctx context.Context, sessionID string, items []models.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].SessionID = sessionID
			items[i].Position = i
		}
		return tx.Create(&items).Error
	})
}

func (r *GormRepository) SaveOrders(ctx context.Context, sessionID string, orders []models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSessionOrders(tx, sessionID); err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		for i := range orders {
			orders[i].SessionID = sessionID
			for j := range orders[i].Items {
				orders[i].Items[j].ID = 0
			}
		}
		return tx.Create(&orders).Error
	})
}

func (r *GormRepository) SaveWishlist(ctx context.Context, sessionID string, items []models.WishlistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].SessionID = sessionID
		}
		return tx.Create(&items).Error
	})
}

func (r *GormRepository) SessionIDForOrder(ctx context.Context, orderID string) (string, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Select("session_id").
		First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve order session: %w", err)
	}
	return order.SessionID, nil
}

// deleteSessionOrders removes a session's orders together with their items.
func deleteSessionOrders(tx *gorm.DB, sessionID string) error {
	var orderIDs []string
	if err := tx.Model(&models.Order{}).
		Where("session_id = ?", sessionID).
		Pluck("id", &orderIDs).Error; err != nil {
		return err
	}
	if len(orderIDs) == 0 {
		return nil
	}
	if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Where("session_id = ?", sessionID).Delete(&models.Order{}).Error
}
