package slotRepo

import (
	"time"

	"campusbook/models"
)

// SlotRepository defines storage operations over slots.
type SlotRepository interface {
	Create(slot *models.Slot) error
	// CreateMany inserts the whole batch atomically: either all slots are
	// created or none are.
	CreateMany(slots []*models.Slot) error
	GetByID(id string) (*models.Slot, error)
	Update(slot *models.Slot) error
	Delete(id string) error
	SetCancelled(id string) error
	ListByFaculty(facultyID string) ([]models.Slot, error)
	ListOpenByFaculty(facultyID string, after time.Time) ([]models.Slot, error)
	// ExistsAt reports whether the faculty already has a slot with the exact
	// start and end times.
	ExistsAt(facultyID string, start, end time.Time) (bool, error)
}
