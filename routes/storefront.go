package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/furqanahmad03/e-store-api/catalog"
	cartControllers "github.com/furqanahmad03/e-store-api/controllers/cart"
	productControllers "github.com/furqanahmad03/e-store-api/controllers/product"
	wishlistControllers "github.com/furqanahmad03/e-store-api/controllers/wishlist"
	"github.com/furqanahmad03/e-store-api/middleware"
	"github.com/furqanahmad03/e-store-api/store"
)

// SetupStorefrontRoutes registers cart, wishlist and product browsing
// endpoints. All require a session token.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, mgr *store.Manager, cat catalog.Catalog) {
	group := r.Group("/")
	group.Use(middleware.ValidateSession)
	{
		cartGroup := group.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(mgr))                      // GET /cart
			cartGroup.GET("/summary", cartControllers.CartSummary(mgr))           // GET /cart/summary
			cartGroup.POST("/", cartControllers.AddToCart(mgr))                   // POST /cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateQuantity(mgr))    // PUT /cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.RemoveFromCart(mgr)) // DELETE /cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearCart(mgr))                 // DELETE /cart
		}

		wishlistGroup := group.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(mgr))
			wishlistGroup.POST("/", wishlistControllers.AddToWishlist(mgr, cat))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.RemoveFromWishlist(mgr))
			wishlistGroup.GET("/contains/:product_id", wishlistControllers.Contains(mgr))
		}

		group.GET("/products", productControllers.GetProducts(db))
		group.GET("/products/:id", productControllers.GetProductByID(cat))
	}
}
