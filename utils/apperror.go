package utils

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes for the booking domain. Handlers map
// these to HTTP statuses; clients branch on them (capacity_exceeded in
// particular drives the waitlist-offer flow).
const (
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeAuthorization    = "authorization_error"
	CodeInvalidState     = "invalid_state"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeDuplicateBooking = "duplicate_booking"
	CodeDuplicateEntry   = "duplicate_entry"
	CodeConflict         = "conflict"
)

// AppError is a typed operation failure with a stable code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	SlotID  string `json:"slotId,omitempty"` // set on capacity_exceeded so callers can offer the waitlist
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewAuthorizationError(format string, args ...any) error {
	return &AppError{Code: CodeAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) error {
	return &AppError{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

// NewCapacityExceededError signals a full slot; slotID travels with the error.
func NewCapacityExceededError(slotID string) error {
	return &AppError{
		Code:    CodeCapacityExceeded,
		Message: "slot is fully booked",
		SlotID:  slotID,
	}
}

func NewDuplicateBookingError(slotID string) error {
	return &AppError{Code: CodeDuplicateBooking, Message: "you already hold an active booking for this slot", SlotID: slotID}
}

func NewDuplicateEntryError(slotID string) error {
	return &AppError{Code: CodeDuplicateEntry, Message: "you are already on the waitlist for this slot", SlotID: slotID}
}

// NewConflictError reports that per-slot serialization could not be obtained;
// the caller should retry the whole operation.
func NewConflictError(slotID string) error {
	return &AppError{Code: CodeConflict, Message: "operation conflicted with a concurrent request, please retry", SlotID: slotID}
}

// AsAppError unwraps err into an *AppError if there is one in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given application error code.
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
