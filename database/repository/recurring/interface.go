package recurringRepo

import (
	"time"

	"campusbook/models"
)

// SeriesOccurrence is one prepared step of a recurring series: the slot to
// materialize and the pre-approved booking on it. Occurrences whose slot
// already exists are skipped during generation.
type SeriesOccurrence struct {
	Slot    *models.Slot
	Booking *models.Booking
}

// RecurringRepository defines storage operations over recurring series.
type RecurringRepository interface {
	// GenerateSeries commits the series document together with every
	// occurrence's slot and booking in a single transaction; a failure at
	// any step leaves nothing behind. It returns the booking ids actually
	// generated (occurrences colliding with an existing slot are skipped).
	GenerateSeries(series *models.RecurringAppointment, occurrences []SeriesOccurrence) ([]string, error)

	// CancelSeries deactivates the series and cancels every generated
	// booking that is still active, in one transaction. Returns the number
	// of bookings cancelled.
	CancelSeries(id, reason string, at time.Time) (int, error)

	GetByID(id string) (*models.RecurringAppointment, error)
	ListActiveByStudent(studentID string) ([]models.RecurringAppointment, error)
	ListActiveByFaculty(facultyID string) ([]models.RecurringAppointment, error)
}
