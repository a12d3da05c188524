package models

import "testing"

func TestBookingStatusActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, true},
		{BookingStatusApproved, true},
		{BookingStatusRejected, false},
		{BookingStatusCancelled, false},
		{BookingStatus("unknown"), false},
	}
	for _, tt := range tests {
		if got := tt.status.Active(); got != tt.want {
			t.Errorf("%s.Active() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, false},
		{BookingStatusApproved, false},
		{BookingStatusRejected, true},
		{BookingStatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestWaitlistStatusQueued(t *testing.T) {
	tests := []struct {
		status WaitlistStatus
		want   bool
	}{
		{WaitlistStatusWaiting, true},
		{WaitlistStatusNotified, true},
		{WaitlistStatusBooked, false},
		{WaitlistStatusCancelled, false},
		{WaitlistStatusExpired, false},
	}
	for _, tt := range tests {
		if got := tt.status.Queued(); got != tt.want {
			t.Errorf("%s.Queued() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRecurrenceTypeValid(t *testing.T) {
	for _, valid := range []RecurrenceType{RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly} {
		if !valid.Valid() {
			t.Errorf("%s.Valid() = false, want true", valid)
		}
	}
	for _, invalid := range []RecurrenceType{"daily", "yearly", ""} {
		if invalid.Valid() {
			t.Errorf("%s.Valid() = true, want false", invalid)
		}
	}
}
