package models

import "time"

// Slot represents a faculty-owned block of bookable time.
type Slot struct {
	ID          string    `bson:"id" json:"id"`
	FacultyID   string    `bson:"faculty_id" json:"facultyId"`
	StartTime   time.Time `bson:"start_time" json:"startTime"`
	EndTime     time.Time `bson:"end_time" json:"endTime"`
	Location    string    `bson:"location" json:"location"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Capacity    int       `bson:"capacity" json:"capacity"` // total seats, at least 1
	IsCancelled bool      `bson:"is_cancelled" json:"isCancelled"`
	IsRecurring bool      `bson:"is_recurring,omitempty" json:"isRecurring,omitempty"` // produced by a recurring series
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// SlotPatch carries the optional fields of a slot update. Nil means "leave as is".
type SlotPatch struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Capacity  *int       `json:"capacity,omitempty"`
}

// SlotView is the student-facing listing entry: a slot enriched with
// occupancy derived from the booking and waitlist ledgers.
type SlotView struct {
	Slot           `bson:",inline"`
	BookingCount   int  `json:"bookingCount"`
	WaitlistCount  int  `json:"waitlistCount"`
	AvailableSpots int  `json:"availableSpots"`
	IsFull         bool `json:"isFull"`
	IsBooked       bool `json:"isBooked"` // the requesting student holds an active booking
}
