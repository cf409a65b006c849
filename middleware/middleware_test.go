package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", ValidateSession, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": c.GetString("session_id")})
	})
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := sessionRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"session_id": "sess_abc",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sess_abc")
}

func TestValidateSessionRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := sessionRouter()

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"session_id": "sess_abc",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signToken(t, "test-secret", jwt.MapClaims{
			"session_id": "sess_abc",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})},
		{"no session claim", signToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if c.token != "" {
				req.Header.Set("Authorization", "Bearer "+c.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestValidateAPIKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "admin-key")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", ValidateAPIKey, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-KEY", "admin-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-API-KEY", "wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
