package handlers

import (
	"net/http"

	"campusbook/models"
	"campusbook/services/recurring"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// RecurringHandler exposes recurring series management.
type RecurringHandler struct {
	Svc recurring.RecurringService
}

func NewRecurringHandler(svc recurring.RecurringService) *RecurringHandler {
	return &RecurringHandler{Svc: svc}
}

// CreateSeries handles POST /api/recurring.
func (h *RecurringHandler) CreateSeries(c *gin.Context) {
	var req models.RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	series, err := h.Svc.CreateSeries(currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, series)
}

// CancelSeries handles POST /api/recurring/:id/cancel.
func (h *RecurringHandler) CancelSeries(c *gin.Context) {
	var req models.CancelRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.Svc.CancelSeries(currentUserID(c), currentRole(c), c.Param("id"), req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "series cancelled"})
}

// ListStudentSeries handles GET /api/recurring/student/:id.
func (h *RecurringHandler) ListStudentSeries(c *gin.Context) {
	if c.Param("id") != currentUserID(c) {
		utils.RespondError(c, utils.NewAuthorizationError("cannot read another student's series"))
		return
	}

	series, err := h.Svc.ListStudentSeries(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// ListFacultySeries handles GET /api/recurring/faculty/:id.
func (h *RecurringHandler) ListFacultySeries(c *gin.Context) {
	if c.Param("id") != currentUserID(c) {
		utils.RespondError(c, utils.NewAuthorizationError("cannot read another faculty member's series"))
		return
	}

	series, err := h.Svc.ListFacultySeries(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}
