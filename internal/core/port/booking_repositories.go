package port

import (
	"context"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

// OwnerLookup resolves the owning identity of a resource without
// loading the full record. Implementations return repository.ErrNotFound
// when the resource does not exist.
type OwnerLookup interface {
	GetOwnerID(ctx context.Context, id string) (string, error)
}

// AppointmentRepository persists bookings. Ownership is the customer id.
type AppointmentRepository interface {
	OwnerLookup
	Create(ctx context.Context, appointment domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository persists reviews. Ownership is the customer id.
type ReviewRepository interface {
	OwnerLookup
	Create(ctx context.Context, review domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]domain.Review, error)
	Update(ctx context.Context, id string, rating int, comment *string) error
	Delete(ctx context.Context, id string) error
}

// ServiceRepository persists catalog entries. Ownership is the
// professional id.
type ServiceRepository interface {
	OwnerLookup
	Create(ctx context.Context, service domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Service, error)
	Update(ctx context.Context, service domain.Service) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository persists charge records.
type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error)
	Delete(ctx context.Context, id string) error
}
