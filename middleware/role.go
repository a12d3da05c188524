package middleware

import (
	"net/http"

	"campusbook/models"

	"github.com/gin-gonic/gin"
)

func requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(CtxUserRole)
		if !exists || got != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This endpoint is restricted to " + string(role) + " accounts",
			})
			return
		}
		c.Next()
	}
}

// FacultyOnly gates faculty-scoped route groups. Requires Auth upstream.
func FacultyOnly() gin.HandlerFunc {
	return requireRole(models.RoleFaculty)
}

// StudentOnly gates student-scoped route groups. Requires Auth upstream.
func StudentOnly() gin.HandlerFunc {
	return requireRole(models.RoleStudent)
}
