package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-portal-api/internal/auth"
)

// Context keys set by Auth for downstream handlers.
const (
	UserIDKey = "uid"
	RoleKey   = "role"
)

// Auth validates the bearer token and stashes the caller's identity in
// the request context. Handlers trust the id/role pair but re-check
// row-level ownership themselves.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); h != "" {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" {
			// fall back to the cookie set by login
			raw, _ = c.Cookie("access_token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// UserID returns the authenticated caller's user id.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
