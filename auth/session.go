package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/furqanahmad03/e-store-api/store"
)

// SessionTTL is how long a browsing session and its token stay valid.
const SessionTTL = 24 * time.Hour

// POST /session
func CreateSession(mgr *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := mgr.CreateSession(c.Request.Context(), SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		token, err := issueSessionToken(session.ID, session.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": session.ID,
			"token":      token,
			"expires_at": session.ExpiresAt,
		})
	}
}

func issueSessionToken(id string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"session_id": id,
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
