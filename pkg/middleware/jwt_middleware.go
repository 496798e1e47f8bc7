package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mem "wtsplinks/pkg/memcache"
	"wtsplinks/pkg/utils"
)

const (
	ContextUserID   = "user_id"
	ContextRole     = "Role"
	ContextTokenID  = "token_id"
	ContextTokenExp = "token_exp"
	bearerPrefix    = "Bearer "
)

func JWTAuthMiddleware(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if revoked != nil && revoked.IsRevoked(claims.ID) {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)

		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
