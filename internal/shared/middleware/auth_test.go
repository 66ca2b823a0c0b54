package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediareview-backend/internal/shared/middleware"
	"mediareview-backend/pkg/jwt"
)

func setupAuthRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(manager), func(c *gin.Context) {
		userID := c.GetInt64(middleware.ContextUserID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/users/:user_id/reviews", middleware.AuthMiddleware(manager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthRouter(jwt.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := setupAuthRouter(jwt.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	router := setupAuthRouter(manager)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddlewarePathUserMustMatchToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	router := setupAuthRouter(manager)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/9/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewarePathUserMatches(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	router := setupAuthRouter(manager)

	token, err := manager.GenerateToken(7, "alex@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/7/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
