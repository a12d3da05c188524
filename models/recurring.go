package models

import "time"

// RecurrenceType is the cadence of a recurring series.
type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// Valid reports whether t is one of the supported cadences.
func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// RecurringAppointment is the template describing a generated series of
// slot+booking pairs. GeneratedBookings only grows during generation and is
// never edited afterwards except by a whole-series cancellation.
type RecurringAppointment struct {
	ID             string         `bson:"id" json:"id"`
	SlotID         string         `bson:"slot_id" json:"slotId"` // origin slot the series was derived from
	StudentID      string         `bson:"student_id" json:"studentId"`
	FacultyID      string         `bson:"faculty_id" json:"facultyId"`
	RecurrenceType RecurrenceType `bson:"recurrence_type" json:"recurrenceType"`
	EndDate        time.Time      `bson:"end_date" json:"endDate"`

	GeneratedBookings []string `bson:"generated_bookings" json:"generatedBookings"` // ordered booking ids

	IsActive     bool       `bson:"is_active" json:"isActive"`
	CancelledAt  *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelReason string     `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
