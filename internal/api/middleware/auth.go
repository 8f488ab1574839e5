package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veritaslab/veritas/internal/logger"
	"github.com/veritaslab/veritas/internal/service"
)

// ownerIDKey is the Gin context key the verified owner identity is
// stored under.
const ownerIDKey = "owner_id"

// Auth returns a middleware that verifies the bearer token and makes
// the owner identity available to handlers. Requests without a valid
// token never reach the core; this is the single authorization
// boundary.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		ownerID, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ownerIDKey, ownerID)
		ctx := logger.SetUserID(c.Request.Context(), ownerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OwnerID extracts the verified owner identity set by Auth. The bool
// is false on routes that skipped the middleware.
func OwnerID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(ownerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
