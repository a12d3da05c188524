package handlers

import (
	"net/http"

	"campusbook/models"
	"campusbook/services/waitlist"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// WaitlistHandler exposes the queue for full slots.
type WaitlistHandler struct {
	Svc waitlist.WaitlistService
}

func NewWaitlistHandler(svc waitlist.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{Svc: svc}
}

// JoinWaitlist handles POST /api/waitlist/join.
func (h *WaitlistHandler) JoinWaitlist(c *gin.Context) {
	var req models.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	entry, err := h.Svc.Join(currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// AcceptOffer handles POST /api/waitlist/:id/accept.
func (h *WaitlistHandler) AcceptOffer(c *gin.Context) {
	created, err := h.Svc.Accept(currentUserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CancelEntry handles POST /api/waitlist/:id/cancel.
func (h *WaitlistHandler) CancelEntry(c *gin.Context) {
	if err := h.Svc.Cancel(currentUserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left the waitlist"})
}

// ListSlotQueue handles GET /api/waitlist/slot/:slotId for the slot's owner.
func (h *WaitlistHandler) ListSlotQueue(c *gin.Context) {
	entries, err := h.Svc.ListSlotQueue(currentUserID(c), c.Param("slotId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ListStudentEntries handles GET /api/waitlist/student/:studentId. Students
// may only read their own entries.
func (h *WaitlistHandler) ListStudentEntries(c *gin.Context) {
	studentID := c.Param("studentId")
	if studentID != currentUserID(c) {
		utils.RespondError(c, utils.NewAuthorizationError("cannot read another student's waitlist entries"))
		return
	}

	entries, err := h.Svc.ListStudentEntries(studentID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
