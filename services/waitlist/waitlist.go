package waitlist

import (
	"context"
	"time"

	"campusbook/config"
	bookingRepo "campusbook/database/repository/booking"
	slotRepo "campusbook/database/repository/slot"
	waitlistRepo "campusbook/database/repository/waitlist"
	"campusbook/models"
	"campusbook/services/capacity"
	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultWaitlistService is the canonical WaitlistService implementation.
// It is also the capacity coordinator's Promoter. All queue mutations run
// under the slot's lock; positions stay a dense 1..N run throughout.
type DefaultWaitlistService struct {
	Repo        waitlistRepo.WaitlistRepository
	SlotRepo    slotRepo.SlotRepository
	BookingRepo bookingRepo.BookingRepository
	Locker      utils.SlotLocker
	Capacity    *capacity.Coordinator
	Notifier    notification.NotificationService
}

func (s *DefaultWaitlistService) logger() *zap.Logger {
	return utils.GetLogger().Named("waitlist")
}

func responseWindow() time.Duration {
	hours := config.AppConfig.WaitlistResponseHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Join appends the student to a full slot's queue.
func (s *DefaultWaitlistService) Join(studentID string, req models.JoinWaitlistRequest) (*models.WaitlistEntry, error) {
	slot, err := s.upcomingSlot(req.SlotID)
	if err != nil {
		return nil, err
	}

	release, err := s.Locker.Lock(context.Background(), req.SlotID)
	if err != nil {
		return nil, err
	}
	defer release()

	hasSeat, err := s.Capacity.HasSeat(req.SlotID, slot.Capacity)
	if err != nil {
		return nil, err
	}
	if hasSeat {
		return nil, utils.NewInvalidStateError("slot still has open seats, book it directly")
	}

	activeBooking, err := s.BookingRepo.FindActiveBySlotAndStudent(req.SlotID, studentID)
	if err != nil {
		return nil, err
	}
	if activeBooking != nil {
		return nil, utils.NewDuplicateBookingError(req.SlotID)
	}

	existing, err := s.Repo.FindActiveBySlotAndStudent(req.SlotID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewDuplicateEntryError(req.SlotID)
	}

	queued, err := s.Repo.CountQueuedBySlot(req.SlotID)
	if err != nil {
		return nil, err
	}

	entry := &models.WaitlistEntry{
		ID:              uuid.NewString(),
		SlotID:          req.SlotID,
		FacultyID:       slot.FacultyID,
		StudentID:       studentID,
		Position:        queued + 1,
		Status:          models.WaitlistStatusWaiting,
		PreferredTiming: req.PreferredTiming,
		Notes:           req.Notes,
	}
	if err := s.Repo.Create(entry); err != nil {
		return nil, err
	}
	s.logger().Info("joined waitlist",
		zap.String("entryId", entry.ID), zap.String("slotId", req.SlotID),
		zap.Int("position", entry.Position))
	return entry, nil
}

// Accept converts the student's outstanding offer into a pre-approved booking.
func (s *DefaultWaitlistService) Accept(studentID, entryID string) (*models.Booking, error) {
	entry, err := s.ownedEntry(studentID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != models.WaitlistStatusNotified {
		return nil, utils.NewInvalidStateError("no outstanding offer for this entry, it is %s", entry.Status)
	}
	if entry.ResponseDeadline != nil && time.Now().After(*entry.ResponseDeadline) {
		return nil, utils.NewInvalidStateError("the offer expired, the seat moved to the next student")
	}

	slot, err := s.upcomingSlot(entry.SlotID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookOffer(entry, slot)
	if err != nil {
		return nil, err
	}
	s.logger().Info("waitlist offer accepted",
		zap.String("entryId", entryID), zap.String("bookingId", booking.ID))

	if s.Notifier != nil {
		s.Notifier.SlotStatusChange(slot.FacultyID, slot,
			"A waitlisted student accepted the open seat on "+slot.StartTime.Format("Mon, Jan 2 2006 at 3:04 PM")+".")
	}

	// With capacity above one another seat may still be open; pass it on.
	if err := s.PromoteNext(entry.SlotID); err != nil {
		s.logger().Warn("promotion after accepted offer failed",
			zap.String("slotId", entry.SlotID), zap.Error(err))
	}
	return booking, nil
}

// bookOffer converts the offer into a pre-approved booking under the slot's
// lock. The lock is released before the caller promotes the next student.
func (s *DefaultWaitlistService) bookOffer(entry *models.WaitlistEntry, slot *models.Slot) (*models.Booking, error) {
	release, err := s.Locker.Lock(context.Background(), entry.SlotID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.Capacity.EnsureSeat(entry.SlotID, slot.Capacity); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:         uuid.NewString(),
		SlotID:     entry.SlotID,
		FacultyID:  entry.FacultyID,
		StudentID:  entry.StudentID,
		Status:     models.BookingStatusApproved,
		BookedAt:   now,
		ApprovedAt: &now,
	}
	if err := s.Repo.BookFromEntry(entry.ID, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel removes the student's entry from the queue. Leaving while holding
// an offer passes the seat to the next student, so declining an offer is
// just a cancel in the notified state.
func (s *DefaultWaitlistService) Cancel(studentID, entryID string) error {
	entry, err := s.ownedEntry(studentID, entryID)
	if err != nil {
		return err
	}
	if !entry.Status.Queued() {
		return utils.NewInvalidStateError("entry has already left the queue, it is %s", entry.Status)
	}

	wasNotified := entry.Status == models.WaitlistStatusNotified
	if err := s.removeUnderLock(entry, models.WaitlistStatusCancelled); err != nil {
		return err
	}
	if wasNotified {
		return s.PromoteNext(entry.SlotID)
	}
	return nil
}

// PromoteNext offers a free seat to the slot's front-of-queue student.
// A no-op when the slot is full, gone, already has an outstanding offer,
// or the queue is empty.
func (s *DefaultWaitlistService) PromoteNext(slotID string) error {
	slot, err := s.SlotRepo.GetByID(slotID)
	if err != nil {
		return err
	}
	if slot == nil || slot.IsCancelled || slot.StartTime.Before(time.Now()) {
		return nil
	}

	release, err := s.Locker.Lock(context.Background(), slotID)
	if err != nil {
		return err
	}
	defer release()

	notified, err := s.Repo.HasNotified(slotID)
	if err != nil {
		return err
	}
	if notified {
		return nil
	}

	hasSeat, err := s.Capacity.HasSeat(slotID, slot.Capacity)
	if err != nil {
		return err
	}
	if !hasSeat {
		return nil
	}

	next, err := s.Repo.NextWaiting(slotID)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	now := time.Now()
	deadline := now.Add(responseWindow())
	ok, err := s.Repo.SetStatusIf(next.ID,
		[]models.WaitlistStatus{models.WaitlistStatusWaiting},
		models.WaitlistStatusNotified,
		bson.M{"notification_sent_at": now, "response_deadline": deadline})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.logger().Info("waitlist offer sent",
		zap.String("entryId", next.ID), zap.String("slotId", slotID),
		zap.Time("deadline", deadline))

	if s.Notifier != nil {
		s.Notifier.WaitlistOffer(next.StudentID, slot, deadline)
	}
	return nil
}

// ExpireOverdue lapses offers whose response window closed.
func (s *DefaultWaitlistService) ExpireOverdue() (int, error) {
	overdue, err := s.Repo.ListOverdueNotified(time.Now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, entry := range overdue {
		if err := s.removeUnderLock(&entry, models.WaitlistStatusExpired); err != nil {
			s.logger().Warn("failed to expire waitlist entry",
				zap.String("entryId", entry.ID), zap.Error(err))
			continue
		}
		expired++

		if s.Notifier != nil {
			if slot, err := s.SlotRepo.GetByID(entry.SlotID); err == nil && slot != nil {
				s.Notifier.SlotStatusChange(entry.StudentID, slot,
					"Your waitlist offer expired; the seat was passed to the next student.")
			}
		}
		if err := s.PromoteNext(entry.SlotID); err != nil {
			s.logger().Warn("promotion after expiry failed",
				zap.String("slotId", entry.SlotID), zap.Error(err))
		}
	}
	return expired, nil
}

// ListSlotQueue returns a slot's queue for its owning faculty member.
func (s *DefaultWaitlistService) ListSlotQueue(facultyID, slotID string) ([]models.WaitlistEntry, error) {
	slot, err := s.SlotRepo.GetByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.NewNotFoundError("slot %s not found", slotID)
	}
	if slot.FacultyID != facultyID {
		return nil, utils.NewAuthorizationError("slot belongs to another faculty member")
	}
	return s.Repo.ListQueuedBySlot(slotID)
}

// ListStudentEntries returns the student's waitlist entries.
func (s *DefaultWaitlistService) ListStudentEntries(studentID string) ([]models.WaitlistEntry, error) {
	return s.Repo.ListByStudent(studentID)
}

func (s *DefaultWaitlistService) removeUnderLock(entry *models.WaitlistEntry, terminal models.WaitlistStatus) error {
	release, err := s.Locker.Lock(context.Background(), entry.SlotID)
	if err != nil {
		return err
	}
	defer release()

	return s.Repo.RemoveAndCompact(entry.ID, entry.SlotID, terminal)
}

func (s *DefaultWaitlistService) ownedEntry(studentID, entryID string) (*models.WaitlistEntry, error) {
	entry, err := s.Repo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, utils.NewNotFoundError("waitlist entry %s not found", entryID)
	}
	if entry.StudentID != studentID {
		return nil, utils.NewAuthorizationError("waitlist entry belongs to another student")
	}
	return entry, nil
}

func (s *DefaultWaitlistService) upcomingSlot(slotID string) (*models.Slot, error) {
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
