package middleware

import (
	"net/http"

	"dreamdecol/models"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits identities ranked at least as high as role. Must run after Protect.
func RequireRole(role, message string) gin.HandlerFunc {
	min := models.RoleRank(role)
	return func(c *gin.Context) {
		identity, ok := CurrentAdmin(c)
		if !ok || models.RoleRank(identity.Role) < min {
			utils.JSONError(c, http.StatusForbidden, message)
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, "Not authorized as admin")
}

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin, "Not authorized as superadmin")
}
