package handlers

import (
	"net/http"

	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the caller's notification feed.
type NotificationHandler struct {
	Svc notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

// ListNotifications handles GET /api/notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := currentUserID(c)
	notifications, err := h.Svc.List(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	unread, err := h.Svc.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Param("id"), currentUserID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

// MarkAllRead handles POST /api/notifications/mark-all-read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.Svc.MarkAllRead(currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteNotification handles DELETE /api/notifications/:id.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id"), currentUserID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
