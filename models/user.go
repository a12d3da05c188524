package models

import "time"

// Role distinguishes the two kinds of accounts.
type Role string

const (
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// User is the directory profile for an account. Credentials and sessions
// live in the external identity service; this record carries only what the
// scheduling features need (browse, display, public share links).
type User struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Role             Role      `bson:"role" json:"role"`
	Department       string    `bson:"department,omitempty" json:"department,omitempty"`
	Bio              string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Qualifications   []string  `bson:"qualifications,omitempty" json:"qualifications,omitempty"`
	ProfilePhoto     string    `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	PublicShareToken string    `bson:"public_share_token,omitempty" json:"-"`
	IsOnline         bool      `bson:"is_online" json:"isOnline"`
	LastSeen         time.Time `bson:"last_seen" json:"lastSeen"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserProfile is the reduced view embedded in booking listings.
type UserProfile struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
}

// Profile returns the reduced view of u.
func (u *User) Profile() *UserProfile {
	return &UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Department: u.Department}
}
