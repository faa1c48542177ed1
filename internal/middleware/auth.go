package middleware

import (
	"net/http"
	"strings"

	"trainerhub/internal/pkg/jwt"
	"trainerhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates "Authorization: Bearer <token>" and sets user_id and role.
func JWTAuth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		if !authenticate(c, jwtSvc, strings.TrimSpace(parts[1])) {
			return
		}
		c.Next()
	}
}

// QueryTokenAuth reads the token from ?token=, for clients that cannot set headers (websockets).
func QueryTokenAuth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "token query parameter is required")
			return
		}
		if !authenticate(c, jwtSvc, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtSvc *jwt.Service, token string) bool {
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return false
	}
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	return true
}
