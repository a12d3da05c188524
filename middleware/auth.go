package middleware

import (
	"net/http"
	"strings"

	"campusbook/services/identity"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Auth resolves the bearer credential through the identity service and
// stashes the caller's id and role on the request context.
func Auth(identitySvc identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		credential := strings.TrimPrefix(authHeader, "Bearer ")
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		who, err := identitySvc.CurrentUser(c.Request.Context(), credential)
		if err != nil || who == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired credential",
			})
			return
		}

		c.Set(CtxUserID, who.UserID)
		c.Set(CtxUserRole, string(who.Role))
		c.Next()
	}
}
