package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkpoint/restaurant-pos/utils"
)

// WebSocketAuthMiddleware authenticates websocket upgrades via a token
// query parameter, since browsers cannot set headers on ws connections.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
