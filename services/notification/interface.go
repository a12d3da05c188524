package notification

import (
	"time"

	"campusbook/models"
)

// NotificationService records user-visible events and queues their email
// copies. Recording is best-effort everywhere it is called from the booking
// and waitlist flows: a notification failure never rolls back the operation
// that triggered it.
type NotificationService interface {
	// Notify persists a notification and queues its email. Failures are
	// logged, never returned.
	Notify(userID string, typ models.NotificationType, title, message, bookingID, slotID string)

	// Event helpers compose the title and message for each domain event.
	BookingRequested(facultyID, studentName string, slot *models.Slot, bookingID string)
	BookingApproved(studentID string, slot *models.Slot, bookingID string)
	BookingRejected(studentID string, slot *models.Slot, bookingID, reason string)
	BookingCancelled(userID, byName string, slot *models.Slot, bookingID, reason string)
	WaitlistOffer(studentID string, slot *models.Slot, deadline time.Time)
	SlotStatusChange(userID string, slot *models.Slot, message string)

	List(userID string) ([]models.Notification, error)
	UnreadCount(userID string) (int, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) (int, error)
	Delete(id, userID string) error

	// PruneRead removes read notifications older than the retention window.
	PruneRead(olderThan time.Duration) (int, error)

	// DeliverEmail performs the actual SMTP send; the queue worker calls it.
	DeliverEmail(payload models.EmailTaskPayload) error
}
