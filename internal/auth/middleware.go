package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal"
)

// UserResolver loads the user a token's claims point at.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
}

// Middleware validates the Authorization bearer token and stores the
// resolved user under the "user" context key.
func Middleware(tm *TokenManager, users UserResolver, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			claims, err := tm.Validate(token)
			if err == nil {
				user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
				if err == nil {
					c.Set("user", user)
					c.Next()
					return
				}
				logger.Warnf("token for unknown user %s", claims.UserID)
			} else {
				logger.Debugf("rejected token: %v", err)
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
	}
}

// CurrentUser pulls the authenticated user from the gin context.
func CurrentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}
