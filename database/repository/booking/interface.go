package bookingRepo

import (
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines storage operations over bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)

	// SetStatusIf transitions the booking to newStatus and applies the extra
	// fields, but only while its current status is one of expect. Returns
	// false when the guard did not match (already transitioned).
	SetStatusIf(id string, expect []models.BookingStatus, newStatus models.BookingStatus, fields bson.M) (bool, error)

	// Reschedule atomically inserts the replacement booking and cancels the
	// old one; the old booking must still be active or the whole unit aborts.
	Reschedule(old *models.Booking, replacement *models.Booking, reason string, at time.Time) error

	CountActiveBySlot(slotID string) (int, error)
	FindActiveBySlotAndStudent(slotID, studentID string) (*models.Booking, error)
	ListActiveBySlot(slotID string) ([]models.Booking, error)
	ListByStudent(studentID string) ([]models.Booking, error)
	ListByFaculty(facultyID string) ([]models.Booking, error)
}
