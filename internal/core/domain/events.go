package domain

import "time"

// UserRegisteredEvent announces a newly created account.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	RoleID       string
	RegisteredAt time.Time
}

// UserLoggedInEvent announces a successful credential exchange.
type UserLoggedInEvent struct {
	EventID    string
	UserID     string
	Scope      string
	LoggedInAt time.Time
}

// TokenRevokedEvent announces an explicit logout blacklisting a token.
type TokenRevokedEvent struct {
	EventID   string
	UserID    string
	RevokedAt time.Time
	ExpiresAt time.Time
}

// AppointmentBookedEvent announces a new booking.
type AppointmentBookedEvent struct {
	EventID        string
	AppointmentID  string
	CustomerID     string
	ProfessionalID string
	ServiceID      string
	StartTime      time.Time
	BookedAt       time.Time
}
