package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/furqanahmad03/e-store-api/metrics"
)

// RequestMetrics records a counter and duration for every request.
func RequestMetrics(m *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.CountRequest(c.Request.Context(), c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
