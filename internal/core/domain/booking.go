package domain

import "time"

// AppointmentStatus enumerates the lifecycle states of a booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled slot between a customer and a
// professional for a catalog service. Start/end times are stored as
// supplied; conflict detection is out of scope.
type Appointment struct {
	ID             string
	StartTime      time.Time
	EndTime        time.Time
	Status         AppointmentStatus
	CustomerID     string
	ProfessionalID string
	ServiceID      string
	CreatedAt      time.Time
}

// Review is a customer rating for a professional after an appointment.
type Review struct {
	ID             string
	Rating         int
	Comment        *string
	CustomerID     string
	ProfessionalID string
	AppointmentID  string
	CreatedAt      time.Time
}

// Service is a bookable catalog entry owned by a professional.
type Service struct {
	ID              string
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	ProfessionalID  string
	Active          bool
	CreatedAt       time.Time
}

// PaymentStatus enumerates card-processor outcomes tracked locally.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records a charge attempt for an appointment. The processor
// reference is opaque; reconciliation happens outside this service.
type Payment struct {
	ID            string
	Amount        float64
	Currency      string
	Status        PaymentStatus
	AppointmentID string
	CustomerID    string
	ProviderRef   *string
	CreatedAt     time.Time
}
