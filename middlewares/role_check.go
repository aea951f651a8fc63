package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

// RequireRoles guards an endpoint so only the listed roles may call it.
// Admin always passes. Authorization happens here, server-side, on every
// mutating route, not in any client.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		userRole, ok := roleInterface.(string)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("invalid role in context"))
			c.Abort()
			return
		}

		if userRole == models.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden,
			fmt.Errorf("role %s does not have access to this resource", userRole))
		c.Abort()
	}
}
