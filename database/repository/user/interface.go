package userRepo

import "campusbook/models"

// UserRepository defines storage operations over directory users.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// ListFaculty returns faculty members, optionally narrowed by exact
	// department and by a case-insensitive name/department search term.
	ListFaculty(department, search string) ([]models.User, error)

	UpdateProfile(id string, fields map[string]interface{}) (*models.User, error)

	// UpdateShareToken sets the faculty member's public schedule token; an
	// empty token revokes sharing.
	UpdateShareToken(id, token string) error

	GetByShareToken(token string) (*models.User, error)
}
