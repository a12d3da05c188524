package models

import "time"

// CreateSlotRequest is the payload for creating a single slot.
type CreateSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Location  string    `json:"location" binding:"required"`
	Notes     string    `json:"notes"`
	Capacity  int       `json:"capacity"`
}

// BulkSlotRequest describes a weekday-masked run of slots over a date range.
// RepeatDays uses the Monday=0 .. Sunday=6 convention.
type BulkSlotRequest struct {
	StartDate  string `json:"startDate" binding:"required"` // "2006-01-02"
	EndDate    string `json:"endDate" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"` // "15:04"
	EndTime    string `json:"endTime" binding:"required"`
	Location   string `json:"location" binding:"required"`
	Notes      string `json:"notes"`
	Capacity   int    `json:"capacity"`
	RepeatDays []int  `json:"repeatDays" binding:"required"`
}

// BookSlotRequest is the payload for a student booking request.
type BookSlotRequest struct {
	SlotID string `json:"slotId" binding:"required"`
}

// RescheduleRequest moves a booking to a different slot.
type RescheduleRequest struct {
	NewSlotID string `json:"newSlotId" binding:"required"`
}

// CancelRequest carries an optional reason for cancel/reject operations.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// JoinWaitlistRequest is the payload for joining a full slot's waitlist.
type JoinWaitlistRequest struct {
	SlotID          string `json:"slotId" binding:"required"`
	PreferredTiming string `json:"preferredTiming"`
	Notes           string `json:"notes"`
}

// RecurringRequest creates a recurring series from an origin slot.
type RecurringRequest struct {
	SlotID         string         `json:"slotId" binding:"required"`
	RecurrenceType RecurrenceType `json:"recurrenceType" binding:"required"`
	EndDate        time.Time      `json:"endDate" binding:"required"`
}

// UpdateProfileRequest patches the directory profile of the current user.
type UpdateProfileRequest struct {
	Name           *string  `json:"name,omitempty"`
	Department     *string  `json:"department,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	ProfilePhoto   *string  `json:"profilePhoto,omitempty"`
}
