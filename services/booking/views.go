package booking

import (
	"campusbook/models"
	"campusbook/utils"
)

// GetView returns one booking joined with its slot and counterpart profile.
// Only the booking's student or the slot's faculty member may read it.
func (s *DefaultBookingService) GetView(bookingID, userID string) (*models.BookingView, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	if booking.StudentID != userID && booking.FacultyID != userID {
		return nil, utils.NewAuthorizationError("not a party to this booking")
	}
	view := s.toView(*booking, true, true)
	return &view, nil
}

// ListStudentBookings returns the student's bookings with slot and faculty
// details attached.
func (s *DefaultBookingService) ListStudentBookings(studentID string) ([]models.BookingView, error) {
	bookings, err := s.Repo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(bookings, false, true), nil
}

// ListFacultyBookings returns bookings across all of the faculty member's
// slots with slot and student details attached.
func (s *DefaultBookingService) ListFacultyBookings(facultyID string) ([]models.BookingView, error) {
	bookings, err := s.Repo.ListByFaculty(facultyID)
	if err != nil {
		return nil, err
	}
	return s.toViews(bookings, true, false), nil
}

// ListSlotBookings returns a slot's active bookings for its owner.
func (s *DefaultBookingService) ListSlotBookings(facultyID, slotID string) ([]models.BookingView, error) {
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

	bookings, err := s.Repo.ListActiveBySlot(slotID)
	if err != nil {
		return nil, err
	}
	return s.toViews(bookings, true, false), nil
}

func (s *DefaultBookingService) toViews(bookings []models.Booking, withStudent, withFaculty bool) []models.BookingView {
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.toView(b, withStudent, withFaculty))
	}
	return views
}

// toView joins best-effort: a missing profile or slot leaves the field nil
// rather than failing the listing.
func (s *DefaultBookingService) toView(b models.Booking, withStudent, withFaculty bool) models.BookingView {
	view := models.BookingView{Booking: b}

	if slot, err := s.SlotRepo.GetByID(b.SlotID); err == nil && slot != nil {
		view.Slot = slot
	}
	if withStudent {
		if user, err := s.UserRepo.GetByID(b.StudentID); err == nil && user != nil {
			view.Student = user.Profile()
		}
	}
	if withFaculty {
		if user, err := s.UserRepo.GetByID(b.FacultyID); err == nil && user != nil {
			view.Faculty = user.Profile()
		}
	}
	return view
}
