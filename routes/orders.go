package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/furqanahmad03/e-store-api/controllers/order"
	"github.com/furqanahmad03/e-store-api/middleware"
	"github.com/furqanahmad03/e-store-api/notify"
	"github.com/furqanahmad03/e-store-api/store"
)

func SetupOrderRoutes(r *gin.Engine, mgr *store.Manager, hub *notify.Hub) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateSession)
	{
		// Create a new order from the session's cart
		orders.POST("/", orderControllers.PlaceOrder(mgr))

		// Fetch the session's orders, most recent first
		orders.GET("/", orderControllers.GetOrders(mgr))
		orders.GET("/:orderID", orderControllers.GetOrder(mgr))

		// Customer lifecycle actions
		orders.POST("/:orderID/cancel", orderControllers.CancelOrder(mgr))
		orders.POST("/:orderID/return", orderControllers.ReturnOrder(mgr))
		orders.POST("/:orderID/received", orderControllers.ConfirmReceived(mgr))

		// Websocket endpoint for real-time notices
		orders.GET("/ws", hub.Serve)
	}
}
