package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const SessionKey = "employee"

// RequireSession rejects requests while nobody is logged in and exposes the
// session blob under SessionKey.
func RequireSession(store services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := store.Get()
		if err != nil {
			utils.ErrorLogger.Printf("Session check failed: %v", err)
		}
		if err != nil || len(data) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No active session",
			})
			return
		}

		c.Set(SessionKey, data)
		c.Next()
	}
}
