package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeAuthorization, http.StatusForbidden},
		{CodeInvalidState, http.StatusConflict},
		{CodeCapacityExceeded, http.StatusConflict},
		{CodeDuplicateBooking, http.StatusConflict},
		{CodeDuplicateEntry, http.StatusConflict},
		{CodeConflict, http.StatusTooManyRequests},
		{"something_else", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestAsAppErrorUnwrapsChains(t *testing.T) {
	base := NewCapacityExceededError("slot-1")
	wrapped := fmt.Errorf("request failed: %w", base)

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError() did not find the typed error in the chain")
	}
	if appErr.Code != CodeCapacityExceeded {
		t.Errorf("code = %q, want %q", appErr.Code, CodeCapacityExceeded)
	}
	if appErr.SlotID != "slot-1" {
		t.Errorf("slotID = %q, want slot-1", appErr.SlotID)
	}
}

func TestAsAppErrorPlainError(t *testing.T) {
	if _, ok := AsAppError(errors.New("boom")); ok {
		t.Fatal("AsAppError() matched a plain error")
	}
}

func TestHasCode(t *testing.T) {
	err := NewDuplicateBookingError("slot-2")
	if !HasCode(err, CodeDuplicateBooking) {
		t.Error("HasCode() = false for matching code")
	}
	if HasCode(err, CodeNotFound) {
		t.Error("HasCode() = true for non-matching code")
	}
	if HasCode(nil, CodeNotFound) {
		t.Error("HasCode(nil) = true")
	}
}
