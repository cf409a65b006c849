package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/notify"
	"github.com/furqanahmad03/e-store-api/store"
)

// SetupRoutes is the single entry-point that wires up the session, store,
// order and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mgr *store.Manager, cat catalog.Catalog, hub *notify.Hub) {
	// Public session issuance (no middleware)
	SetupAuthRoutes(r, mgr)

	// Storefront routes (session-token protected)
	SetupStorefrontRoutes(r, db, mgr, cat)

	// Order routes (session-token protected)
	SetupOrderRoutes(r, mgr, hub)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, db, mgr)
}
