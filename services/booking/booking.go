package booking

import (
	"context"
	"time"

	bookingRepo "campusbook/database/repository/booking"
	slotRepo "campusbook/database/repository/slot"
	userRepo "campusbook/database/repository/user"
	waitlistRepo "campusbook/database/repository/waitlist"
	"campusbook/models"
	"campusbook/services/capacity"
	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultBookingService is the canonical BookingService implementation.
// Capacity-sensitive writes run under the slot's lock so two students cannot
// both take the last seat.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	SlotRepo     slotRepo.SlotRepository
	UserRepo     userRepo.UserRepository
	WaitlistRepo waitlistRepo.WaitlistRepository
	Locker       utils.SlotLocker
	Capacity     *capacity.Coordinator
	Notifier     notification.NotificationService
}

func (s *DefaultBookingService) logger() *zap.Logger {
	return utils.GetLogger().Named("booking")
}

// Request places a pending booking on a bookable slot.
func (s *DefaultBookingService) Request(studentID, slotID string) (*models.Booking, error) {
	slot, err := s.bookableSlot(slotID)
	if err != nil {
		return nil, err
	}

	release, err := s.Locker.Lock(context.Background(), slotID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.Capacity.EnsureSeat(slotID, slot.Capacity); err != nil {
		return nil, err
	}
	if err := s.ensureNotAlreadyIn(slotID, studentID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.NewString(),
		SlotID:    slotID,
		FacultyID: slot.FacultyID,
		StudentID: studentID,
		Status:    models.BookingStatusPending,
		BookedAt:  time.Now(),
	}
	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}
	s.logger().Info("booking requested",
		zap.String("bookingId", booking.ID), zap.String("slotId", slotID),
		zap.String("studentId", studentID))

	if s.Notifier != nil {
		s.Notifier.BookingRequested(slot.FacultyID, s.displayName(studentID), slot, booking.ID)
	}
	return booking, nil
}

// Approve moves a pending booking to approved.
func (s *DefaultBookingService) Approve(facultyID, bookingID string) (*models.Booking, error) {
	booking, err := s.facultyBooking(facultyID, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ok, err := s.Repo.SetStatusIf(bookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusApproved,
		bson.M{"approved_at": now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewInvalidStateError("only pending bookings can be approved, this one is %s", booking.Status)
	}
	booking.Status = models.BookingStatusApproved
	booking.ApprovedAt = &now

	if slot, err := s.SlotRepo.GetByID(booking.SlotID); err == nil && slot != nil && s.Notifier != nil {
		s.Notifier.BookingApproved(booking.StudentID, slot, booking.ID)
	}
	return booking, nil
}

// Reject declines a pending booking, freeing its seat.
func (s *DefaultBookingService) Reject(facultyID, bookingID, reason string) (*models.Booking, error) {
	booking, err := s.facultyBooking(facultyID, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fields := bson.M{"rejected_at": now}
	if reason != "" {
		fields["cancellation_reason"] = reason
	}
	ok, err := s.Repo.SetStatusIf(bookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusRejected, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewInvalidStateError("only pending bookings can be rejected, this one is %s", booking.Status)
	}
	booking.Status = models.BookingStatusRejected
	booking.RejectedAt = &now
	booking.CancellationReason = reason

	if slot, err := s.SlotRepo.GetByID(booking.SlotID); err == nil && slot != nil && s.Notifier != nil {
		s.Notifier.BookingRejected(booking.StudentID, slot, booking.ID, reason)
	}
	s.Capacity.SeatFreed(booking.SlotID)
	return booking, nil
}

// Cancel ends an active booking. Either side of the appointment may cancel;
// a booking that already left the active set cannot be cancelled again.
func (s *DefaultBookingService) Cancel(userID string, role models.Role, bookingID, reason string) error {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return utils.NewNotFoundError("booking %s not found", bookingID)
	}

	switch role {
	case models.RoleStudent:
		if booking.StudentID != userID {
			return utils.NewAuthorizationError("booking belongs to another student")
		}
	case models.RoleFaculty:
		if booking.FacultyID != userID {
			return utils.NewAuthorizationError("booking belongs to another faculty member's slot")
		}
	default:
		return utils.NewAuthorizationError("unknown role")
	}

	if booking.Status == models.BookingStatusCancelled {
		return utils.NewInvalidStateError("booking is already cancelled")
	}

	now := time.Now()
	fields := bson.M{"cancelled_at": now}
	if reason != "" {
		fields["cancellation_reason"] = reason
	}
	ok, err := s.Repo.SetStatusIf(bookingID,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusApproved},
		models.BookingStatusCancelled, fields)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewInvalidStateError("booking can no longer be cancelled")
	}
	s.logger().Info("booking cancelled",
		zap.String("bookingId", bookingID), zap.String("by", userID))

	if slot, err := s.SlotRepo.GetByID(booking.SlotID); err == nil && slot != nil && s.Notifier != nil {
		counterpart := booking.FacultyID
		if role == models.RoleFaculty {
			counterpart = booking.StudentID
		}
		s.Notifier.BookingCancelled(counterpart, s.displayName(userID), slot, bookingID, reason)
	}
	s.Capacity.SeatFreed(booking.SlotID)
	return nil
}

// Reschedule replaces an active booking with a pending request on another
// slot. The swap is atomic; the freed seat on the old slot is offered to its
// waitlist afterwards.
func (s *DefaultBookingService) Reschedule(studentID, bookingID, newSlotID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	if booking.StudentID != studentID {
		return nil, utils.NewAuthorizationError("booking belongs to another student")
	}
	if !booking.Status.Active() {
		return nil, utils.NewInvalidStateError("only pending or approved bookings can be rescheduled")
	}
	if booking.SlotID == newSlotID {
		return nil, utils.NewValidationError("new slot must differ from the current one")
	}

	newSlot, err := s.bookableSlot(newSlotID)
	if err != nil {
		return nil, err
	}

	replacement, err := s.placeReplacement(booking, newSlot)
	if err != nil {
		return nil, err
	}
	s.logger().Info("booking rescheduled",
		zap.String("oldBookingId", booking.ID), zap.String("newBookingId", replacement.ID),
		zap.String("newSlotId", newSlotID))

	if s.Notifier != nil {
		s.Notifier.BookingRequested(newSlot.FacultyID, s.displayName(studentID), newSlot, replacement.ID)
	}
	s.Capacity.SeatFreed(booking.SlotID)
	return replacement, nil
}

// placeReplacement swaps the booking onto the new slot under the new slot's
// lock. The old slot's promotion happens after this lock is released, so the
// two slot locks are never held together.
func (s *DefaultBookingService) placeReplacement(booking *models.Booking, newSlot *models.Slot) (*models.Booking, error) {
	release, err := s.Locker.Lock(context.Background(), newSlot.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.Capacity.EnsureSeat(newSlot.ID, newSlot.Capacity); err != nil {
		return nil, err
	}
	if err := s.ensureNotAlreadyIn(newSlot.ID, booking.StudentID); err != nil {
		return nil, err
	}

	replacement := &models.Booking{
		ID:                uuid.NewString(),
		SlotID:            newSlot.ID,
		FacultyID:         newSlot.FacultyID,
		StudentID:         booking.StudentID,
		Status:            models.BookingStatusPending,
		BookedAt:          time.Now(),
		OriginalBookingID: booking.ID,
	}
	if err := s.Repo.Reschedule(booking, replacement, "rescheduled to another slot", time.Now()); err != nil {
		return nil, err
	}
	return replacement, nil
}

func (s *DefaultBookingService) bookableSlot(slotID string) (*models.Slot, error) {
	slot, err := s.SlotRepo.GetByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.NewNotFoundError("slot %s not found", slotID)
	}
	if slot.IsCancelled {
		return nil, utils.NewInvalidStateError("slot has been cancelled")
	}
	if slot.StartTime.Before(time.Now()) {
		return nil, utils.NewInvalidStateError("slot has already started")
	}
	return slot, nil
}

// ensureNotAlreadyIn refuses a seat while the student already holds an active
// booking or a queued waitlist entry on the slot. Waitlisted students go
// through the offer flow instead of booking past the queue.
func (s *DefaultBookingService) ensureNotAlreadyIn(slotID, studentID string) error {
	existing, err := s.Repo.FindActiveBySlotAndStudent(slotID, studentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return utils.NewDuplicateBookingError(slotID)
	}
	queued, err := s.WaitlistRepo.FindActiveBySlotAndStudent(slotID, studentID)
	if err != nil {
		return err
	}
	if queued != nil {
		return utils.NewDuplicateBookingError(slotID)
	}
	return nil
}

func (s *DefaultBookingService) facultyBooking(facultyID, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	if booking.FacultyID != facultyID {
		return nil, utils.NewAuthorizationError("booking belongs to another faculty member's slot")
	}
	return booking, nil
}

func (s *DefaultBookingService) displayName(userID string) string {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil || user == nil {
		return "A user"
	}
	return user.Name
}
