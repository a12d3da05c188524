package notificationRepo

import (
	"time"

	"campusbook/models"
)

// NotificationRepository defines storage operations over user notifications.
type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID string, limit int64) ([]models.Notification, error)
	CountUnread(userID string) (int, error)

	// MarkRead flips a single notification to read; it reports whether the
	// notification belonged to the user and was updated.
	MarkRead(id, userID string) (bool, error)

	// MarkAllRead flips all of the user's unread notifications and returns
	// how many changed.
	MarkAllRead(userID string) (int, error)

	// Delete removes the notification; it reports whether it belonged to
	// the user and was removed.
	Delete(id, userID string) (bool, error)

	// DeleteOldRead prunes read notifications created before the cutoff.
	DeleteOldRead(before time.Time) (int, error)

	// MarkEmailSent records that the email copy went out.
	MarkEmailSent(id string) error
}
