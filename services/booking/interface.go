package booking

import "campusbook/models"

// BookingService owns the booking lifecycle: request, faculty decision,
// cancellation, and reschedule.
type BookingService interface {
	// Request places a pending booking for the student. Fails with a
	// capacity error when the slot is full (clients then offer the
	// waitlist) and a duplicate error when the student already holds an
	// active booking on the slot.
	Request(studentID, slotID string) (*models.Booking, error)

	Approve(facultyID, bookingID string) (*models.Booking, error)
	Reject(facultyID, bookingID, reason string) (*models.Booking, error)

	// Cancel works for the booking's student and for the slot's faculty
	// member. Cancelling an already-cancelled booking is a no-op.
	Cancel(userID string, role models.Role, bookingID, reason string) error

	// Reschedule atomically replaces an active booking with a new pending
	// request on a different slot; the old booking is cancelled and the two
	// are linked.
	Reschedule(studentID, bookingID, newSlotID string) (*models.Booking, error)

	GetView(bookingID, userID string) (*models.BookingView, error)
	ListStudentBookings(studentID string) ([]models.BookingView, error)
	ListFacultyBookings(facultyID string) ([]models.BookingView, error)
	ListSlotBookings(facultyID, slotID string) ([]models.BookingView, error)
}
