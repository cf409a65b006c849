package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/furqanahmad03/e-store-api/store"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GET /cart
func GetCart(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": sess.CartItems(),
			"total": sess.CartTotal(),
			"count": sess.CartCount(),
		})
	}
}

// POST /cart
func AddToCart(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := sess.AddToCart(c.Request.Context(), input.ProductID, input.Quantity)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{
				"items": sess.CartItems(),
				"total": sess.CartTotal(),
			})
		case errors.Is(err, store.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, store.ErrQuantityExceedsStock):
			// Not an error to the page: the user just hit the stock ceiling.
			c.JSON(http.StatusOK, gin.H{
				"warning": "Requested quantity exceeds available stock",
				"items":   sess.CartItems(),
			})
		case errors.Is(err, store.ErrMirrorUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not add to cart, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
	}
}

// PUT /cart/:product_id
func UpdateQuantity(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		productID, ok := productParam(c)
		if !ok {
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := sess.UpdateQuantity(c.Request.Context(), productID, input.Quantity)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{
				"items": sess.CartItems(),
				"total": sess.CartTotal(),
			})
		case errors.Is(err, store.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in your cart"})
		case errors.Is(err, store.ErrQuantityTooLow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		case errors.Is(err, store.ErrQuantityExceedsStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Quantity exceeds available stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		}
	}
}

// DELETE /cart/:product_id
func RemoveFromCart(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		productID, ok := productParam(c)
		if !ok {
			return
		}

		if err := sess.RemoveFromCart(c.Request.Context(), productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed", "items": sess.CartItems()})
	}
}

// DELETE /cart
func ClearCart(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		if err := sess.ClearCart(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /cart/summary
func CartSummary(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count": sess.CartCount(),
			"total": sess.CartTotal(),
		})
	}
}

func session(c *gin.Context, mgr *store.Manager) (*store.Session, bool) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	sess, err := mgr.Session(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil, false
	}
	return sess, true
}

func productParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}
