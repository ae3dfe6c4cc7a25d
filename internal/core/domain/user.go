package domain

import "time"

// User mirrors the persisted representation in the users table.
// Customers, professionals, and admins share this shape; the role
// reference decides which extension record (if any) applies.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	RoleID          string
	ProfileImageURL *string
	CreatedAt       time.Time
}

// CustomerProfile extends a User with customer-specific attributes,
// keyed by the same identifier.
type CustomerProfile struct {
	UserID    string
	Phone     *string
	CreatedAt time.Time
}

// ProfessionalProfile extends a User with professional-specific
// attributes, keyed by the same identifier.
type ProfessionalProfile struct {
	UserID    string
	Bio       *string
	Verified  bool
	CreatedAt time.Time
}
