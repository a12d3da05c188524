package waitlist

import "campusbook/models"

// WaitlistService owns the queue for full slots: joining, offers when seats
// free up, and the student's accept/decline on an offer.
type WaitlistService interface {
	// Join appends the student to a full slot's queue. Refused while the
	// slot still has open seats.
	Join(studentID string, req models.JoinWaitlistRequest) (*models.WaitlistEntry, error)

	// Accept converts a notified entry into a pre-approved booking.
	Accept(studentID, entryID string) (*models.Booking, error)

	// Cancel removes the student's entry from the queue at any point.
	// Leaving while holding an offer passes the seat to the next student.
	Cancel(studentID, entryID string) error

	// PromoteNext offers a freed seat to the front of the queue. At most
	// one offer per slot is outstanding at a time.
	PromoteNext(slotID string) error

	// ExpireOverdue lapses offers whose response window closed and moves
	// each seat along. Returns how many entries expired.
	ExpireOverdue() (int, error)

	ListSlotQueue(facultyID, slotID string) ([]models.WaitlistEntry, error)
	ListStudentEntries(studentID string) ([]models.WaitlistEntry, error)
}
