package notification

import (
	"fmt"
	"time"

	"campusbook/models"
)

const slotTimeLayout = "Mon, Jan 2 2006 at 3:04 PM"

func slotWhen(slot *models.Slot) string {
	return slot.StartTime.Format(slotTimeLayout)
}

// BookingRequested tells the faculty member a student asked for a slot.
func (s *DefaultNotificationService) BookingRequested(facultyID, studentName string, slot *models.Slot, bookingID string) {
	s.Notify(facultyID, models.NotifyBookingRequest,
		"New booking request",
		fmt.Sprintf("%s requested an appointment on %s.", studentName, slotWhen(slot)),
		bookingID, slot.ID)
}

// BookingApproved tells the student their request went through.
func (s *DefaultNotificationService) BookingApproved(studentID string, slot *models.Slot, bookingID string) {
	s.Notify(studentID, models.NotifyBookingApproved,
		"Booking approved",
		fmt.Sprintf("Your appointment on %s was approved. Location: %s.", slotWhen(slot), slot.Location),
		bookingID, slot.ID)
}

// BookingRejected tells the student their request was declined.
func (s *DefaultNotificationService) BookingRejected(studentID string, slot *models.Slot, bookingID, reason string) {
	msg := fmt.Sprintf("Your appointment request for %s was declined.", slotWhen(slot))
	if reason != "" {
		msg += " Reason: " + reason
	}
	s.Notify(studentID, models.NotifyBookingRejected, "Booking declined", msg, bookingID, slot.ID)
}

// BookingCancelled tells the counterpart a booking was cancelled.
func (s *DefaultNotificationService) BookingCancelled(userID, byName string, slot *models.Slot, bookingID, reason string) {
	msg := fmt.Sprintf("%s cancelled the appointment on %s.", byName, slotWhen(slot))
	if reason != "" {
		msg += " Reason: " + reason
	}
	s.Notify(userID, models.NotifyBookingCancelled, "Booking cancelled", msg, bookingID, slot.ID)
}

// WaitlistOffer tells the student a seat opened up and how long they have.
func (s *DefaultNotificationService) WaitlistOffer(studentID string, slot *models.Slot, deadline time.Time) {
	s.Notify(studentID, models.NotifyStatusChange,
		"A spot opened up",
		fmt.Sprintf("A seat is available for the slot on %s. Accept before %s or the offer moves to the next student.",
			slotWhen(slot), deadline.Format(slotTimeLayout)),
		"", slot.ID)
}

// SlotStatusChange tells an affected user a slot they depend on changed.
func (s *DefaultNotificationService) SlotStatusChange(userID string, slot *models.Slot, message string) {
	s.Notify(userID, models.NotifyStatusChange, "Slot update", message, "", slot.ID)
}
