package middleware

import (
	"strings"

	"github.com/driveport/service-rental/internal/auth"
	"github.com/driveport/service-rental/internal/domain/user"
	"github.com/driveport/service-rental/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const currentUserKey = "currentUser"

// AuthMiddleware is the auth gate: it extracts the bearer token, verifies
// it against the shared secret, resolves the user record, and attaches it
// to the request context. Any failure short-circuits with 401 and the
// uniform failure shape; no further processing runs.
func AuthMiddleware(jwtManager *auth.JWTManager, users user.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			response.Unauthorized(c, "not authorized")
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			response.Unauthorized(c, "not authorized")
			c.Abort()
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, "not authorized")
			c.Abort()
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

// CurrentUserID returns the authenticated user's ID.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	u, ok := CurrentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID(), true
}
