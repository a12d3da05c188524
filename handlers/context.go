package handlers

import (
	"campusbook/middleware"
	"campusbook/models"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the caller id the auth middleware stashed.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// currentRole reads the caller role the auth middleware stashed.
func currentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(middleware.CtxUserRole); ok {
		if role, ok := v.(string); ok {
			return models.Role(role)
		}
	}
	return ""
}
