package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainUser "electrotrack/internal/domain/user"
	"electrotrack/pkg/utils"
)

func RoleMiddleware(allowedRoles ...domainUser.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if domainUser.Role(role) == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleAdmin)
}

// RequireWrite lets admins and operators through; viewers are read-only.
func RequireWrite() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleAdmin, domainUser.RoleOperator)
}
