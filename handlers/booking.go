package handlers

import (
	"net/http"

	"campusbook/models"
	"campusbook/services/booking"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle for both sides of the
// appointment.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// BookSlot handles POST /api/student/book-slot. A full slot answers with a
// capacity_exceeded code so the client can offer the waitlist instead.
func (h *BookingHandler) BookSlot(c *gin.Context) {
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.Request(currentUserID(c), req.SlotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListStudentBookings handles GET /api/student/bookings.
func (h *BookingHandler) ListStudentBookings(c *gin.Context) {
	views, err := h.Svc.ListStudentBookings(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// ListFacultyBookings handles GET /api/faculty/bookings.
func (h *BookingHandler) ListFacultyBookings(c *gin.Context) {
	views, err := h.Svc.ListFacultyBookings(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// ApproveBooking handles PUT /api/faculty/bookings/:id/approve.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	updated, err := h.Svc.Approve(currentUserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RejectBooking handles PUT /api/faculty/bookings/:id/reject.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	var req models.CancelRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.Svc.Reject(currentUserID(c), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBooking serves both PUT /api/faculty/bookings/:id/cancel and
// PUT /api/student/bookings/:id/cancel; the caller's role decides which
// ownership rule applies.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req models.CancelRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.Svc.Cancel(currentUserID(c), currentRole(c), c.Param("id"), req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// RescheduleBooking handles POST /api/student/reschedule-booking/:id.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	replacement, err := h.Svc.Reschedule(currentUserID(c), c.Param("id"), req.NewSlotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, replacement)
}

// GetBooking handles GET /api/bookings/:id for either party.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	view, err := h.Svc.GetView(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListSlotBookings handles GET /api/faculty/slots/:id/bookings.
func (h *BookingHandler) ListSlotBookings(c *gin.Context) {
	views, err := h.Svc.ListSlotBookings(currentUserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}
