package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session. Banned
// accounts are rejected even with a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		id, ok := toUint64(userID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, id).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user.Banned {
			apierrors.Forbidden(c, "Account is banned")
			c.Abort()
			return
		}

		// Store user ID and role in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, id)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireAdmin checks that the authenticated user has the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.UserRoleAdmin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
