package recurring

import (
	"time"

	recurringRepo "campusbook/database/repository/recurring"
	slotRepo "campusbook/database/repository/slot"
	"campusbook/models"
	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generation is bounded so a far-future end date cannot mint thousands of
// slots in one request.
const maxOccurrences = 52

// DefaultRecurringService is the canonical RecurringService implementation.
type DefaultRecurringService struct {
	Repo     recurringRepo.RecurringRepository
	SlotRepo slotRepo.SlotRepository
	Notifier notification.NotificationService
}

func (s *DefaultRecurringService) logger() *zap.Logger {
	return utils.GetLogger().Named("recurring")
}

// CreateSeries expands the request into cloned slots with pre-approved
// bookings and commits the whole batch atomically.
func (s *DefaultRecurringService) CreateSeries(studentID string, req models.RecurringRequest) (*models.RecurringAppointment, error) {
	if !req.RecurrenceType.Valid() {
		return nil, utils.NewValidationError("recurrenceType must be weekly, biweekly or monthly")
	}

	origin, err := s.SlotRepo.GetByID(req.SlotID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, utils.NewNotFoundError("slot %s not found", req.SlotID)
	}
	if origin.IsCancelled {
		return nil, utils.NewInvalidStateError("origin slot has been cancelled")
	}
	if !req.EndDate.After(origin.StartTime) {
		return nil, utils.NewValidationError("endDate must fall after the origin slot")
	}

	dates := SeriesDates(origin.StartTime, req.RecurrenceType, req.EndDate)
	if len(dates) > maxOccurrences {
		return nil, utils.NewValidationError("series would span %d occurrences, the limit is %d", len(dates), maxOccurrences)
	}

	series := &models.RecurringAppointment{
		ID:             uuid.NewString(),
		SlotID:         origin.ID,
		StudentID:      studentID,
		FacultyID:      origin.FacultyID,
		RecurrenceType: req.RecurrenceType,
		EndDate:        req.EndDate,
		IsActive:       true,
	}

	duration := origin.EndTime.Sub(origin.StartTime)
	now := time.Now()
	occurrences := make([]recurringRepo.SeriesOccurrence, 0, len(dates))
	for _, start := range dates {
		slot := &models.Slot{
			ID:          uuid.NewString(),
			FacultyID:   origin.FacultyID,
			StartTime:   start,
			EndTime:     start.Add(duration),
			Location:    origin.Location,
			Notes:       origin.Notes,
			Capacity:    origin.Capacity,
			IsRecurring: true,
		}
		booking := &models.Booking{
			ID:                     uuid.NewString(),
			SlotID:                 slot.ID,
			FacultyID:              origin.FacultyID,
			StudentID:              studentID,
			Status:                 models.BookingStatusApproved,
			BookedAt:               now,
			ApprovedAt:             &now,
			RecurringAppointmentID: series.ID,
		}
		occurrences = append(occurrences, recurringRepo.SeriesOccurrence{Slot: slot, Booking: booking})
	}

	generated, err := s.Repo.GenerateSeries(series, occurrences)
	if err != nil {
		return nil, err
	}
	series.GeneratedBookings = generated
	s.logger().Info("recurring series created",
		zap.String("seriesId", series.ID), zap.String("studentId", studentID),
		zap.Int("generated", len(generated)))

	if s.Notifier != nil {
		s.Notifier.SlotStatusChange(origin.FacultyID, origin,
			"A student set up a recurring appointment series with "+string(req.RecurrenceType)+" cadence.")
	}
	return series, nil
}

// CancelSeries deactivates the series and cascades cancellation to its
// still-active bookings.
func (s *DefaultRecurringService) CancelSeries(userID string, role models.Role, seriesID, reason string) error {
	series, err := s.Repo.GetByID(seriesID)
	if err != nil {
		return err
	}
	if series == nil {
		return utils.NewNotFoundError("series %s not found", seriesID)
	}

	switch role {
	case models.RoleStudent:
		if series.StudentID != userID {
			return utils.NewAuthorizationError("series belongs to another student")
		}
	case models.RoleFaculty:
		if series.FacultyID != userID {
			return utils.NewAuthorizationError("series belongs to another faculty member's slots")
		}
	default:
		return utils.NewAuthorizationError("unknown role")
	}

	if !series.IsActive {
		return nil
	}

	cancelled, err := s.Repo.CancelSeries(seriesID, reason, time.Now())
	if err != nil {
		return err
	}
	s.logger().Info("recurring series cancelled",
		zap.String("seriesId", seriesID), zap.Int("bookingsCancelled", cancelled))

	if s.Notifier != nil {
		counterpart := series.FacultyID
		if role == models.RoleFaculty {
			counterpart = series.StudentID
		}
		if origin, err := s.SlotRepo.GetByID(series.SlotID); err == nil && origin != nil {
			msg := "The recurring appointment series was cancelled."
			if reason != "" {
				msg += " Reason: " + reason
			}
			s.Notifier.SlotStatusChange(counterpart, origin, msg)
		}
	}
	return nil
}

// Get returns one series to either of its parties.
func (s *DefaultRecurringService) Get(seriesID, userID string) (*models.RecurringAppointment, error) {
	series, err := s.Repo.GetByID(seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, utils.NewNotFoundError("series %s not found", seriesID)
	}
	if series.StudentID != userID && series.FacultyID != userID {
		return nil, utils.NewAuthorizationError("not a party to this series")
	}
	return series, nil
}

// ListStudentSeries returns the student's active series.
func (s *DefaultRecurringService) ListStudentSeries(studentID string) ([]models.RecurringAppointment, error) {
	return s.Repo.ListActiveByStudent(studentID)
}

// ListFacultySeries returns the faculty member's active series.
func (s *DefaultRecurringService) ListFacultySeries(facultyID string) ([]models.RecurringAppointment, error) {
	return s.Repo.ListActiveByFaculty(facultyID)
}
