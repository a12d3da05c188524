package recurring

import "campusbook/models"

// RecurringService expands one recurrence request into a bounded series of
// slot+booking pairs and manages whole-series cancellation.
type RecurringService interface {
	// CreateSeries generates the series in one atomic batch: cloned slots,
	// pre-approved bookings, and the series document all commit together
	// or not at all.
	CreateSeries(studentID string, req models.RecurringRequest) (*models.RecurringAppointment, error)

	// CancelSeries deactivates the series and cancels every generated
	// booking that is still active. The student who created the series or
	// the faculty member who owns its slots may cancel.
	CancelSeries(userID string, role models.Role, seriesID, reason string) error

	Get(seriesID, userID string) (*models.RecurringAppointment, error)
	ListStudentSeries(studentID string) ([]models.RecurringAppointment, error)
	ListFacultySeries(facultyID string) ([]models.RecurringAppointment, error)
}
