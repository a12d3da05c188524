package models

import "time"

// WaitlistStatus is the lifecycle state of a waitlist entry.
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusNotified  WaitlistStatus = "notified"
	WaitlistStatusBooked    WaitlistStatus = "booked"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

// Queued reports whether the entry still occupies a position in the queue.
func (s WaitlistStatus) Queued() bool {
	return s == WaitlistStatusWaiting || s == WaitlistStatusNotified
}

// WaitlistEntry is a student's position in line for a full slot.
// Positions of queued entries per slot are a dense 1-based sequence.
type WaitlistEntry struct {
	ID        string         `bson:"id" json:"id"`
	SlotID    string         `bson:"slot_id" json:"slotId"`
	FacultyID string         `bson:"faculty_id" json:"facultyId"`
	StudentID string         `bson:"student_id" json:"studentId"`
	Position  int            `bson:"position" json:"position"`
	Status    WaitlistStatus `bson:"status" json:"status"`

	NotificationSentAt *time.Time `bson:"notification_sent_at,omitempty" json:"notificationSentAt,omitempty"`
	ResponseDeadline   *time.Time `bson:"response_deadline,omitempty" json:"responseDeadline,omitempty"`

	PreferredTiming string `bson:"preferred_timing,omitempty" json:"preferredTiming,omitempty"` // e.g. "morning", "afternoon"
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
