package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/permission"
	"asso-portal/internal/repository"
	"asso-portal/pkg/jwt"
	"asso-portal/pkg/redis"
	"asso-portal/pkg/response"
)

// JWTAuth validates the Bearer access token, rejects blacklisted tokens
// and re-checks the account's active flag against the database, so a
// deactivation cuts the session off before the token expires.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Degrade open on Redis trouble; the token itself is valid.
				logger.Warn("blacklist check failed", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, 10002, "account no longer exists")
			} else {
				logger.Error("failed to load user for auth", zap.Error(err))
				response.InternalError(c)
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Forbidden(c, 10006, "account disabled")
			c.Abort()
			return
		}

		// The role comes from the database, not the token, so promotions
		// and demotions apply immediately.
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)

		c.Next()
	}
}

// RequirePermission gates a route on the static permission table.
func RequirePermission(perms ...permission.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		if !permission.HasAll(role.(string), perms...) {
			response.Forbidden(c, 10003, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin shortcuts the common back-office gate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || !permission.IsAdmin(role.(string)) {
			response.Forbidden(c, 10003, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
