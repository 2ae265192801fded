package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"prediction-engine/internal/models"
)

// AuthMiddleware validates JWT tokens and protects routes
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tier", claims.Tier)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a token is present but
// lets anonymous requests through as free-tier viewers. Used on the public
// read path so premium gating can still recognize subscribers.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, errMsg := claimsFromHeader(c); errMsg == "" {
				c.Set("user_id", claims.UserID)
				c.Set("tier", claims.Tier)
			}
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	// Extract token from "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization header format. Expected: Bearer <token>"
	}

	claims, err := ValidateToken(parts[1])
	if err != nil {
		return nil, "Invalid or expired token"
	}

	return claims, ""
}

// GetUserID retrieves the user ID from the context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint)
	return id, ok
}

// GetTier retrieves the viewer's subscription tier from the context,
// defaulting to free for anonymous viewers.
func GetTier(c *gin.Context) models.SubscriptionTier {
	value, exists := c.Get("tier")
	if !exists {
		return models.TierFree
	}

	tier, ok := value.(models.SubscriptionTier)
	if !ok {
		return models.TierFree
	}
	return tier
}
