package slot

import (
	"time"

	bookingRepo "campusbook/database/repository/booking"
	slotRepo "campusbook/database/repository/slot"
	waitlistRepo "campusbook/database/repository/waitlist"
	"campusbook/models"
	"campusbook/services/capacity"
	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSlotService is the canonical SlotService implementation.
type DefaultSlotService struct {
	Repo         slotRepo.SlotRepository
	BookingRepo  bookingRepo.BookingRepository
	WaitlistRepo waitlistRepo.WaitlistRepository
	Capacity     *capacity.Coordinator
	Notifier     notification.NotificationService
}

func (s *DefaultSlotService) logger() *zap.Logger {
	return utils.GetLogger().Named("slot")
}

// Create validates and stores a single slot owned by the faculty member.
func (s *DefaultSlotService) Create(facultyID string, req models.CreateSlotRequest) (*models.Slot, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	capSeats := req.Capacity
	if capSeats == 0 {
		capSeats = 1
	}
	if capSeats < 1 {
		return nil, utils.NewValidationError("capacity must be at least 1")
	}

	exists, err := s.Repo.ExistsAt(facultyID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewInvalidStateError("a slot already exists at this time")
	}

	slot := &models.Slot{
		ID:        uuid.NewString(),
		FacultyID: facultyID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Notes:     req.Notes,
		Capacity:  capSeats,
	}
	if err := s.Repo.Create(slot); err != nil {
		return nil, err
	}
	s.logger().Info("slot created",
		zap.String("slotId", slot.ID), zap.String("facultyId", facultyID),
		zap.Time("startTime", slot.StartTime))
	return slot, nil
}

// BulkCreate expands the request into concrete slots and inserts them as one
// atomic batch, skipping times the faculty member already covers.
func (s *DefaultSlotService) BulkCreate(facultyID string, req models.BulkSlotRequest) ([]*models.Slot, int, error) {
	windows, err := ExpandBulkDates(req.StartDate, req.EndDate, req.StartTime, req.EndTime, req.RepeatDays)
	if err != nil {
		return nil, 0, err
	}
	capSeats := req.Capacity
	if capSeats == 0 {
		capSeats = 1
	}
	if capSeats < 1 {
		return nil, 0, utils.NewValidationError("capacity must be at least 1")
	}

	var slots []*models.Slot
	skipped := 0
	for _, w := range windows {
		exists, err := s.Repo.ExistsAt(facultyID, w[0], w[1])
		if err != nil {
			return nil, 0, err
		}
		if exists {
			skipped++
			continue
		}
		slots = append(slots, &models.Slot{
			ID:        uuid.NewString(),
			FacultyID: facultyID,
			StartTime: w[0],
			EndTime:   w[1],
			Location:  req.Location,
			Notes:     req.Notes,
			Capacity:  capSeats,
		})
	}
	if len(slots) == 0 {
		return nil, skipped, nil
	}

	if err := s.Repo.CreateMany(slots); err != nil {
		return nil, 0, err
	}
	s.logger().Info("bulk slots created",
		zap.String("facultyId", facultyID), zap.Int("created", len(slots)), zap.Int("skipped", skipped))
	return slots, skipped, nil
}

// Update applies a partial edit to an owned, non-cancelled slot. Shrinking
// capacity below the current active booking count is refused.
func (s *DefaultSlotService) Update(facultyID, slotID string, patch models.SlotPatch) (*models.Slot, error) {
	slot, err := s.ownedSlot(facultyID, slotID)
	if err != nil {
		return nil, err
	}
	if slot.IsCancelled {
		return nil, utils.NewInvalidStateError("cannot edit a cancelled slot")
	}

	changedTime := false
	if patch.StartTime != nil {
		slot.StartTime = *patch.StartTime
		changedTime = true
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
		changedTime = true
	}
	if changedTime {
		if err := validateWindow(slot.StartTime, slot.EndTime); err != nil {
			return nil, err
		}
	}
	if patch.Location != nil {
		slot.Location = *patch.Location
	}
	if patch.Notes != nil {
		slot.Notes = *patch.Notes
	}
	if patch.Capacity != nil {
		if *patch.Capacity < 1 {
			return nil, utils.NewValidationError("capacity must be at least 1")
		}
		active, err := s.Capacity.ActiveCount(slotID)
		if err != nil {
			return nil, err
		}
		if *patch.Capacity < active {
			return nil, utils.NewInvalidStateError("capacity cannot drop below the %d active bookings", active)
		}
		slot.Capacity = *patch.Capacity
	}

	if err := s.Repo.Update(slot); err != nil {
		return nil, err
	}

	if changedTime {
		s.notifyActive(slot, "The appointment slot you booked moved to "+slot.StartTime.Format("Mon, Jan 2 2006 at 3:04 PM")+".")
	}
	return slot, nil
}

// Cancel marks the slot cancelled and tells every affected student. The
// bookings themselves stay as they are until the faculty member acts on them.
func (s *DefaultSlotService) Cancel(facultyID, slotID, reason string) error {
	slot, err := s.ownedSlot(facultyID, slotID)
	if err != nil {
		return err
	}
	if slot.IsCancelled {
		return nil
	}

	if err := s.Repo.SetCancelled(slotID); err != nil {
		return err
	}
	s.logger().Info("slot cancelled", zap.String("slotId", slotID), zap.String("facultyId", facultyID))

	msg := "The slot on " + slot.StartTime.Format("Mon, Jan 2 2006 at 3:04 PM") + " was cancelled by the faculty member."
	if reason != "" {
		msg += " Reason: " + reason
	}
	s.notifyActive(slot, msg)
	s.notifyQueued(slot, msg)
	return nil
}

// Delete removes a slot that nothing depends on anymore.
func (s *DefaultSlotService) Delete(facultyID, slotID string) error {
	slot, err := s.ownedSlot(facultyID, slotID)
	if err != nil {
		return err
	}

	bookingCount, waitlistCount, err := s.Capacity.Occupancy(slotID)
	if err != nil {
		return err
	}
	if bookingCount > 0 {
		return utils.NewInvalidStateError("slot still has %d active bookings, cancel them first", bookingCount)
	}
	if waitlistCount > 0 {
		return utils.NewInvalidStateError("slot still has %d queued waitlist entries", waitlistCount)
	}

	if err := s.Repo.Delete(slotID); err != nil {
		return err
	}
	s.logger().Info("slot deleted", zap.String("slotId", slot.ID), zap.String("facultyId", facultyID))
	return nil
}

// GetView returns one slot enriched with occupancy.
func (s *DefaultSlotService) GetView(slotID, viewerStudentID string) (*models.SlotView, error) {
	slot, err := s.Repo.GetByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.NewNotFoundError("slot %s not found", slotID)
	}
	view, err := s.enrich(*slot, viewerStudentID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ListFacultySlots returns all of the faculty member's slots with occupancy.
func (s *DefaultSlotService) ListFacultySlots(facultyID string) ([]models.SlotView, error) {
	slots, err := s.Repo.ListByFaculty(facultyID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(slots, "")
}

// ListOpenSlots returns the faculty member's bookable future slots.
func (s *DefaultSlotService) ListOpenSlots(facultyID, viewerStudentID string) ([]models.SlotView, error) {
	slots, err := s.Repo.ListOpenByFaculty(facultyID, time.Now())
	if err != nil {
		return nil, err
	}
	return s.enrichAll(slots, viewerStudentID)
}

func (s *DefaultSlotService) enrichAll(slots []models.Slot, viewerStudentID string) ([]models.SlotView, error) {
	views := make([]models.SlotView, 0, len(slots))
	for _, slot := range slots {
		view, err := s.enrich(slot, viewerStudentID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *DefaultSlotService) enrich(slot models.Slot, viewerStudentID string) (models.SlotView, error) {
	bookingCount, waitlistCount, err := s.Capacity.Occupancy(slot.ID)
	if err != nil {
		return models.SlotView{}, err
	}

	view := models.SlotView{
		Slot:           slot,
		BookingCount:   bookingCount,
		WaitlistCount:  waitlistCount,
		AvailableSpots: slot.Capacity - bookingCount,
		IsFull:         bookingCount >= slot.Capacity,
	}
	if view.AvailableSpots < 0 {
		view.AvailableSpots = 0
	}

	if viewerStudentID != "" {
		existing, err := s.BookingRepo.FindActiveBySlotAndStudent(slot.ID, viewerStudentID)
		if err != nil {
			return models.SlotView{}, err
		}
		view.IsBooked = existing != nil
	}
	return view, nil
}

func (s *DefaultSlotService) ownedSlot(facultyID, slotID string) (*models.Slot, error) {
	slot, err := s.Repo.GetByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.NewNotFoundError("slot %s not found", slotID)
	}
	if slot.FacultyID != facultyID {
		return nil, utils.NewAuthorizationError("slot belongs to another faculty member")
	}
	return slot, nil
}

func (s *DefaultSlotService) notifyActive(slot *models.Slot, message string) {
	if s.Notifier == nil {
		return
	}
	bookings, err := s.BookingRepo.ListActiveBySlot(slot.ID)
	if err != nil {
		s.logger().Warn("could not load bookings for slot notification",
			zap.String("slotId", slot.ID), zap.Error(err))
		return
	}
	for _, b := range bookings {
		s.Notifier.SlotStatusChange(b.StudentID, slot, message)
	}
}

func (s *DefaultSlotService) notifyQueued(slot *models.Slot, message string) {
	if s.Notifier == nil {
		return
	}
	entries, err := s.WaitlistRepo.ListQueuedBySlot(slot.ID)
	if err != nil {
		s.logger().Warn("could not load waitlist for slot notification",
			zap.String("slotId", slot.ID), zap.Error(err))
		return
	}
	for _, e := range entries {
		s.Notifier.SlotStatusChange(e.StudentID, slot, message)
	}
}

func validateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return utils.NewValidationError("startTime must be before endTime")
	}
	if start.Before(time.Now()) {
		return utils.NewValidationError("slot must start in the future")
	}
	return nil
}
