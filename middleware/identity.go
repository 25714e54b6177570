package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key the identity middleware stores the caller id under.
const UserIDKey = "userID"

// RequireIdentity extracts the opaque caller identity from the X-User-ID
// header. Authentication itself happens upstream; the engine only needs a
// stable id for ownership and audit fields.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CallerID returns the identity set by RequireIdentity, or empty.
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
