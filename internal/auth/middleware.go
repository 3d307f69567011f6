package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anishgrg/disaster-response-server/internal/models"
	"github.com/anishgrg/disaster-response-server/internal/repository"
)

const contextUserKey = "currentUser"

// Middleware guards protected routes: it extracts the bearer token,
// verifies it, loads the identity and attaches it to the request context.
// Any failure short-circuits with 401 before the handler runs. No role
// checks happen here; authorization is flat.
func Middleware(tokens *TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			// Expired vs malformed is logged for observability; the
			// client sees the same outcome either way.
			if errors.Is(err, ErrTokenExpired) {
				slog.Debug("rejected expired token", "path", c.Request.URL.Path)
			} else {
				slog.Debug("rejected malformed token", "path", c.Request.URL.Path)
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity attached by Middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
