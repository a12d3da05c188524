package handlers

import (
	"net/http"

	"campusbook/models"
	"campusbook/services/slot"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes the faculty slot lifecycle and the student-facing
// availability listing.
type SlotHandler struct {
	Svc slot.SlotService
}

func NewSlotHandler(svc slot.SlotService) *SlotHandler {
	return &SlotHandler{Svc: svc}
}

// CreateSlot handles POST /api/faculty/slots.
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.Create(currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// BulkCreateSlots handles POST /api/faculty/bulk-slots.
func (h *SlotHandler) BulkCreateSlots(c *gin.Context) {
	var req models.BulkSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, skipped, err := h.Svc.BulkCreate(currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"slots":   created,
		"created": len(created),
		"skipped": skipped,
	})
}

// ListMySlots handles GET /api/faculty/slots.
func (h *SlotHandler) ListMySlots(c *gin.Context) {
	views, err := h.Svc.ListFacultySlots(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": views})
}

// UpdateSlot handles PUT /api/faculty/slots/:id.
func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.Update(currentUserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelSlot handles POST /api/faculty/slots/:id/cancel.
func (h *SlotHandler) CancelSlot(c *gin.Context) {
	var req models.CancelRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.Svc.Cancel(currentUserID(c), c.Param("id"), req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot cancelled"})
}

// DeleteSlot handles DELETE /api/faculty/slots/:id.
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.Svc.Delete(currentUserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}

// ListFacultyOpenSlots handles GET /api/student/faculty/:id/slots.
func (h *SlotHandler) ListFacultyOpenSlots(c *gin.Context) {
	views, err := h.Svc.ListOpenSlots(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": views})
}
