package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/store"
)

type AddWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /wishlist
func GetWishlist(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": sess.Wishlist(),
			"count": sess.WishlistCount(),
		})
	}
}

// POST /wishlist
func AddToWishlist(mgr *store.Manager, cat catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		var input AddWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := cat.ProductByID(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
			}
			return
		}

		err = sess.AddToWishlist(c.Request.Context(), *product)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"items": sess.Wishlist()})
		case errors.Is(err, store.ErrAlreadyInWishlist):
			c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist", "items": sess.Wishlist()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		}
	}
}

// DELETE /wishlist/:product_id
func RemoveFromWishlist(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		productID, ok := productParam(c)
		if !ok {
			return
		}

		if err := sess.RemoveFromWishlist(c.Request.Context(), productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "items": sess.Wishlist()})
	}
}

// GET /wishlist/contains/:product_id
func Contains(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		productID, ok := productParam(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"in_wishlist": sess.IsInWishlist(productID)})
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
