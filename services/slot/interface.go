package slot

import "campusbook/models"

// SlotService owns the faculty-facing slot lifecycle and the student-facing
// availability view.
type SlotService interface {
	Create(facultyID string, req models.CreateSlotRequest) (*models.Slot, error)

	// BulkCreate expands a weekday-masked date range into slots and inserts
	// them in one atomic batch. Dates where the faculty already has a slot
	// at the same time are skipped; the skip count is returned.
	BulkCreate(facultyID string, req models.BulkSlotRequest) ([]*models.Slot, int, error)

	Update(facultyID, slotID string, patch models.SlotPatch) (*models.Slot, error)

	// Cancel marks the slot cancelled. Existing bookings are left standing;
	// their students are told about the change and the faculty member is
	// expected to follow up per booking.
	Cancel(facultyID, slotID, reason string) error

	// Delete removes a slot outright. Refused while any active booking or
	// queued waitlist entry still points at it.
	Delete(facultyID, slotID string) error

	GetView(slotID, viewerStudentID string) (*models.SlotView, error)
	ListFacultySlots(facultyID string) ([]models.SlotView, error)

	// ListOpenSlots returns the faculty's future, non-cancelled slots
	// enriched with occupancy. viewerStudentID marks slots the viewer
	// already holds a booking on; empty means anonymous (public share view).
	ListOpenSlots(facultyID, viewerStudentID string) ([]models.SlotView, error)
}
