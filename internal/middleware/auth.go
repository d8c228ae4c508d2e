package middleware

import (
	"net/http"
	"strings"

	"paymentapi/config"
	"paymentapi/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the operator JWT and sets subject and role in context.
// Without a configured secret the API is open.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Secret == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// GetSubject returns the authenticated operator, or "" when auth is disabled.
func GetSubject(c *gin.Context) string {
	return c.GetString("subject")
}
