package models

import "time"

// NotificationType enumerates the user-visible event kinds.
type NotificationType string

const (
	NotifyBookingRequest   NotificationType = "booking_request"
	NotifyBookingApproved  NotificationType = "booking_approved"
	NotifyBookingRejected  NotificationType = "booking_rejected"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyMeetingReminder  NotificationType = "meeting_reminder"
	NotifyStatusChange     NotificationType = "status_change"
)

// Notification is a fire-and-forget record of an event shown to a user.
type Notification struct {
	ID               string           `bson:"id" json:"id"`
	UserID           string           `bson:"user_id" json:"userId"`
	Type             NotificationType `bson:"type" json:"type"`
	Title            string           `bson:"title" json:"title"`
	Message          string           `bson:"message" json:"message"`
	RelatedBookingID string           `bson:"related_booking_id,omitempty" json:"relatedBookingId,omitempty"`
	RelatedSlotID    string           `bson:"related_slot_id,omitempty" json:"relatedSlotId,omitempty"`
	IsRead           bool             `bson:"is_read" json:"isRead"`
	EmailSent        bool             `bson:"email_sent" json:"emailSent"`
	CreatedAt        time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updated_at" json:"updatedAt"`
}
