package middleware

import (
	"net/http"
	"strings"

	"github.com/ilyasseisov/flashcards/internal/services"

	"github.com/gin-gonic/gin"
)

// JWTAuth requires a valid identity-provider bearer token and stores the
// external user id on the context.
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth extracts the user id when a valid bearer token is present and
// lets the request through either way. A missing or bad token just means no
// personalization, never an error.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if userID, err := authService.ValidateToken(parts[1]); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

// AdminAuth gates catalog administration behind a shared API key.
func AdminAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-API-Key")
		if key == "" || key != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin API key"})
			return
		}
		c.Next()
	}
}
