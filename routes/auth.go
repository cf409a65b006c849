package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/furqanahmad03/e-store-api/auth"
	"github.com/furqanahmad03/e-store-api/store"
)

// SetupAuthRoutes registers the public session endpoint.
func SetupAuthRoutes(r *gin.Engine, mgr *store.Manager) {
	r.POST("/session", auth.CreateSession(mgr))
}
