// api/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcaload/arcaload-backend/config"
	"github.com/arcaload/arcaload-backend/internal/auth" // Import internal auth logic and errors
	"github.com/arcaload/arcaload-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// AuthMiddleware creates a gin middleware for checking bearer-token
// authentication. Revoked tokens (logout) are rejected, and every
// authenticated request gets a re-issued token in X-Refreshed-Token so
// the 24h window slides while the admin stays active.
func AuthMiddleware(cfg *config.Config, revocations *auth.RevocationList) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			err := errors.New("authorization header required")
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			err := errors.New("authorization header format must be Bearer {token}")
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		tokenString := parts[1]

		// Validate the token using the internal auth function
		claims, err := auth.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			customLog.Printf("AuthMiddleware: Token validation failed: %v", err)
			errMsg := "Invalid token"
			switch {
			case errors.Is(err, auth.ErrTokenMalformed):
				errMsg = err.Error()
			case errors.Is(err, auth.ErrTokenExpired):
				errMsg = err.Error()
			}

			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}

		if revocations.IsRevoked(claims.ID) {
			customLog.Printf("AuthMiddleware: Rejected revoked token %s for admin %d", claims.ID, claims.AdminID)
			_ = c.Error(auth.ErrTokenRevoked)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		// Token is valid! Set the admin identity in the context
		c.Set("adminID", claims.AdminID)
		c.Set("adminUsername", claims.Username)
		c.Set("tokenID", claims.ID)
		c.Set("tokenExpiresAt", claims.ExpiresAt.Time)

		// Slide the session window
		if refreshed, err := auth.GenerateToken(claims.AdminID, claims.Username, cfg.JWTSecret, cfg.JWTExpiration); err == nil {
			c.Header("X-Refreshed-Token", refreshed)
		}

		c.Next() // Continue to the next handler
	}
}
