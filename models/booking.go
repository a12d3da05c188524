package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Active reports whether the status counts against slot capacity.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled
}

// Booking represents a student's claim on one slot.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	SlotID             string        `bson:"slot_id" json:"slotId"`
	FacultyID          string        `bson:"faculty_id" json:"facultyId"` // denormalized from the slot
	StudentID          string        `bson:"student_id" json:"studentId"`
	Status             BookingStatus `bson:"status" json:"status"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`

	BookedAt    time.Time  `bson:"booked_at" json:"bookedAt"`
	ApprovedAt  *time.Time `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `bson:"rejected_at,omitempty" json:"rejectedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`

	// Reschedule linkage: the new booking points back with OriginalBookingID,
	// the superseded one points forward with RescheduledTo.
	OriginalBookingID string `bson:"original_booking_id,omitempty" json:"originalBookingId,omitempty"`
	RescheduledTo     string `bson:"rescheduled_to,omitempty" json:"rescheduledTo,omitempty"`

	RecurringAppointmentID string `bson:"recurring_appointment_id,omitempty" json:"recurringAppointmentId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookingView is a booking joined with its slot and the counterpart's profile.
type BookingView struct {
	Booking `bson:",inline"`
	Slot    *Slot        `json:"slot,omitempty"`
	Student *UserProfile `json:"student,omitempty"`
	Faculty *UserProfile `json:"faculty,omitempty"`
}
