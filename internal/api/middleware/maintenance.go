package middleware

import (
	"github.com/gin-gonic/gin"

	"asso-portal/internal/permission"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// Maintenance returns 503 to everyone but admins while maintenance mode is
// on. It runs after JWTAuth on authenticated groups; on public groups no
// role is set and every caller is gated.
func Maintenance(settings service.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !settings.IsMaintenanceMode(c.Request.Context()) {
			c.Next()
			return
		}

		if role, exists := c.Get("role"); exists && permission.IsAdmin(role.(string)) {
			c.Next()
			return
		}

		response.ServiceUnavailable(c, 10007, "the portal is under maintenance")
		c.Abort()
	}
}
