package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/furqanahmad03/e-store-api/store"
)

type PlaceOrderInput struct {
	ShippingAddress models.Address       `json:"shipping_address" binding:"required"`
	BillingAddress  *models.Address      `json:"billing_address"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" binding:"required"`
}

type ReasonInput struct {
	Reason string `json:"reason" binding:"required"`
}

// POST /orders
func PlaceOrder(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := sess.CreateOrder(c.Request.Context(), store.CheckoutInput{
			ShippingAddress: input.ShippingAddress,
			BillingAddress:  input.BillingAddress,
			PaymentMethod:   input.PaymentMethod,
		})
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, order)
		case errors.Is(err, store.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, store.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
	}
}

// GET /orders
func GetOrders(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sess.Orders())
	}
}

// GET /orders/:orderID
func GetOrder(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}
		order, found := sess.OrderByID(c.Param("orderID"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
func CancelOrder(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		var input ReasonInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A cancellation reason is required"})
			return
		}

		respondLifecycle(c, sess.CancelOrder(c.Request.Context(), c.Param("orderID"), input.Reason),
			"Order cancelled", "Order cannot be cancelled in its current status")
	}
}

// POST /orders/:orderID/return
func ReturnOrder(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		var input ReasonInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A return reason is required"})
			return
		}

		respondLifecycle(c, sess.ReturnOrder(c.Request.Context(), c.Param("orderID"), input.Reason),
			"Return registered", "Order cannot be returned in its current status")
	}
}

// POST /orders/:orderID/received
func ConfirmReceived(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c, mgr)
		if !ok {
			return
		}

		err := sess.ConfirmReceived(c.Request.Context(), c.Param("orderID"))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Receipt confirmed"})
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, store.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Only delivered orders can be confirmed"})
		case errors.Is(err, store.ErrMirrorUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not confirm receipt, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm receipt"})
		}
	}
}

func respondLifecycle(c *gin.Context, err error, okMsg, conflictMsg string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": okMsg})
	case errors.Is(err, store.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required"})
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, store.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": conflictMsg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
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
