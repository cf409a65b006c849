package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/furqanahmad03/e-store-api/controllers/admin"
	"github.com/furqanahmad03/e-store-api/middleware"
	"github.com/furqanahmad03/e-store-api/store"
)

// SetupAdminRoutes registers the back-office endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, mgr *store.Manager) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/orders", adminControllers.GetAllOrders(db))
		admin.GET("/orders/export", adminControllers.ExportOrdersToExcel(db))
		admin.PUT("/orders/:orderID/status", adminControllers.UpdateOrderStatus(mgr))
		admin.PUT("/orders/:orderID/payment-status", adminControllers.UpdatePaymentStatus(mgr))
	}
}
