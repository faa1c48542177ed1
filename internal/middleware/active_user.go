package middleware

import (
	"context"
	"errors"
	"net/http"

	"trainerhub/internal/domain"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ActiveUser re-reads the authenticated user so that bans and role changes
// take effect before the token expires. Must run after JWTAuth.
func ActiveUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Abort(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User no longer exists")
				return
			}
			response.Abort(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to lookup user")
			return
		}
		if user.IsBanned {
			response.Abort(c, http.StatusForbidden, "USER_BANNED", "Account is banned")
			return
		}

		c.Set("role", string(user.Role))
		c.Next()
	}
}
