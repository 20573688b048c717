package handler

import (
	"github.com/gin-gonic/gin"

	"asso-portal/internal/permission"
	"asso-portal/pkg/response"
)

// MustGetUserID extracts the authenticated user id from the context.
// Returns false (after writing a 401) when the auth middleware did not run.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// CallerIsAdmin reports whether the authenticated caller has the admin role.
func CallerIsAdmin(c *gin.Context) bool {
	v, exists := c.Get("role")
	if !exists {
		return false
	}
	role, ok := v.(string)
	return ok && permission.IsAdmin(role)
}
