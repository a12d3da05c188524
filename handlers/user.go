package handlers

import (
	"net/http"

	"campusbook/models"
	"campusbook/services/user"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the directory, profiles, and the public share link.
type UserHandler struct {
	Svc user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// GetMyProfile handles GET /api/me.
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.Svc.GetProfile(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile handles PUT /api/me.
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.UpdateProfile(currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListFaculty handles GET /api/student/faculty with optional department and
// search query parameters.
func (h *UserHandler) ListFaculty(c *gin.Context) {
	faculty, err := h.Svc.ListFaculty(c.Query("department"), c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculty": faculty})
}

// GenerateShareToken handles POST /api/faculty/generate-share-token.
func (h *UserHandler) GenerateShareToken(c *gin.Context) {
	token, err := h.Svc.GenerateShareToken(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shareToken": token})
}

// PublicSchedule handles GET /api/public/faculty/:id/schedule without
// authentication. The path parameter is the share token, not a user id.
func (h *UserHandler) PublicSchedule(c *gin.Context) {
	schedule, err := h.Svc.PublicSchedule(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// PublicFacultyProfile handles GET /api/public/faculty/:id/profile.
func (h *UserHandler) PublicFacultyProfile(c *gin.Context) {
	profile, err := h.Svc.GetFacultyProfile(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.Profile())
}
