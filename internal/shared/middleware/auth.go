package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mediareview-backend/pkg/jwt"
)

// ContextUserID is the gin context key the authenticated user id is stored
// under.
const ContextUserID = "user_id"

// AuthMiddleware verifies the bearer token and stores the caller's user id in
// the context. When the route carries a :user_id path parameter it must match
// the token subject, otherwise the request is rejected before any handler
// runs.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if pathID := c.Param("user_id"); pathID != "" {
			id, err := strconv.ParseInt(pathID, 10, 64)
			if err != nil || id != claims.UserID {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you are not authorized to access this resource"})
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
