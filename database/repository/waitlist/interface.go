package waitlistRepo

import (
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// WaitlistRepository defines storage operations over waitlist entries.
// Position ordering is owned exclusively by the waitlist service; no other
// component writes positions.
type WaitlistRepository interface {
	Create(entry *models.WaitlistEntry) error
	GetByID(id string) (*models.WaitlistEntry, error)

	// SetStatusIf transitions the entry guarded by its expected current
	// status. Returns false when the guard did not match.
	SetStatusIf(id string, expect []models.WaitlistStatus, newStatus models.WaitlistStatus, fields bson.M) (bool, error)

	// RemoveAndCompact moves the entry to the given terminal status (cancelled
	// or expired) and rewrites the surviving queued positions into a dense
	// 1..N run, all in one transaction.
	RemoveAndCompact(id, slotID string, terminal models.WaitlistStatus) error

	// BookFromEntry marks the entry booked and inserts the pre-approved
	// booking in one transaction; aborts unless the entry is still notified.
	BookFromEntry(entryID string, booking *models.Booking) error

	FindActiveBySlotAndStudent(slotID, studentID string) (*models.WaitlistEntry, error)
	CountQueuedBySlot(slotID string) (int, error)
	NextWaiting(slotID string) (*models.WaitlistEntry, error)
	HasNotified(slotID string) (bool, error)
	ListQueuedBySlot(slotID string) ([]models.WaitlistEntry, error)
	ListByStudent(studentID string) ([]models.WaitlistEntry, error)
	ListOverdueNotified(now time.Time) ([]models.WaitlistEntry, error)
}
