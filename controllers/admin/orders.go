package adminControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/furqanahmad03/e-store-api/store"
)

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// mapOrderStatus accepts the two statuses the back office drives. Cancel
// and return stay customer-initiated operations with a reason.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusDispatched):
		return models.OrderStatusDispatched, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatus(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := mgr.SessionForOrder(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve order"})
			}
			return
		}

		err = sess.AdvanceOrder(c.Request.Context(), orderID, newStatus)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
		case errors.Is(err, store.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Illegal status transition"})
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatus(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var input UpdatePaymentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(input.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess, err := mgr.SessionForOrder(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve order"})
			}
			return
		}

		if err := sess.SetPaymentStatus(c.Request.Context(), orderID, newStatus); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// GET /admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "Status", "PaymentMethod", "PaymentStatus", "TotalAmount",
			"Items", "ShippingCity", "ShippingCountry", "CreatedAt", "EstimatedDelivery",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(o.TotalAmount)

			var items []string
			for _, item := range o.Items {
				items = append(items, item.Name)
			}
			row.AddCell().SetValue(strings.Join(items, ", "))
			row.AddCell().SetValue(o.ShippingAddress.City)
			row.AddCell().SetValue(o.ShippingAddress.Country)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(o.EstimatedDelivery.Format("2006-01-02"))
		}

		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
