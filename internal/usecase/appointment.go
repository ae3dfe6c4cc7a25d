package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/repository"
)

var (
	// ErrAppointmentNotFound indicates the requested appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrServiceNotBookable indicates the referenced catalog entry is
	// missing or inactive.
	ErrServiceNotBookable = errors.New("service not bookable")
)

// BookAppointmentInput captures the fields required to book a slot.
type BookAppointmentInput struct {
	CustomerID string
	ServiceID  string
	StartTime  time.Time
}

// AppointmentService manages the booking lifecycle.
type AppointmentService struct {
	appointments  port.AppointmentRepository
	services      port.ServiceRepository
	users         port.UserRepository
	events        port.EventPublisher
	notifications port.NotificationSender
	logger        *zap.Logger
	now           func() time.Time
}

// NewAppointmentService constructs an AppointmentService.
func NewAppointmentService(
	appointments port.AppointmentRepository,
	services port.ServiceRepository,
	users port.UserRepository,
	events port.EventPublisher,
	notifications port.NotificationSender,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments:  appointments,
		services:      services,
		users:         users,
		events:        events,
		notifications: notifications,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Book creates a pending appointment for the customer. The end time is
// derived from the service duration.
func (s *AppointmentService) Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error) {
	if input.StartTime.IsZero() {
		return nil, NewValidationError("start time is required")
	}
	if input.StartTime.Before(s.now()) {
		return nil, NewValidationError("start time must be in the future")
	}

	service, err := s.services.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotBookable
		}
		return nil, fmt.Errorf("lookup service: %w", err)
	}
	if !service.Active {
		return nil, ErrServiceNotBookable
	}

	appointment := domain.Appointment{
		ID:             uuid.NewString(),
		StartTime:      input.StartTime.UTC(),
		EndTime:        input.StartTime.UTC().Add(time.Duration(service.DurationMinutes) * time.Minute),
		Status:         domain.AppointmentPending,
		CustomerID:     input.CustomerID,
		ProfessionalID: service.ProfessionalID,
		ServiceID:      service.ID,
		CreatedAt:      s.now(),
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.publishBooked(ctx, appointment)
	s.confirmByMail(ctx, appointment, service.Name)

	return &appointment, nil
}

func (s *AppointmentService) publishBooked(ctx context.Context, appointment domain.Appointment) {
	if s.events == nil {
		return
	}
	event := domain.AppointmentBookedEvent{
		EventID:        uuid.NewString(),
		AppointmentID:  appointment.ID,
		CustomerID:     appointment.CustomerID,
		ProfessionalID: appointment.ProfessionalID,
		ServiceID:      appointment.ServiceID,
		StartTime:      appointment.StartTime,
		BookedAt:       appointment.CreatedAt,
	}
	if err := s.events.PublishAppointmentBooked(ctx, event); err != nil {
		s.logger.Warn("publish appointment booked event failed",
			zap.String("appointment_id", appointment.ID),
			zap.Error(err),
		)
	}
}

func (s *AppointmentService) confirmByMail(ctx context.Context, appointment domain.Appointment, serviceName string) {
	if s.notifications == nil {
		return
	}

	customer, err := s.users.GetByID(ctx, appointment.CustomerID)
	if err != nil {
		s.logger.Warn("confirmation mail skipped, customer lookup failed",
			zap.String("appointment_id", appointment.ID),
			zap.Error(err),
		)
		return
	}

	professionalName := ""
	if professional, err := s.users.GetByID(ctx, appointment.ProfessionalID); err == nil {
		professionalName = professional.FirstName + " " + professional.LastName
	}

	if err := s.notifications.SendAppointmentConfirmation(
		ctx,
		customer.Email,
		customer.FirstName,
		professionalName,
		serviceName,
		appointment.StartTime,
	); err != nil {
		s.logger.Warn("appointment confirmation mail failed",
			zap.String("appointment_id", appointment.ID),
			zap.Error(err),
		)
	}
}

// Get retrieves an appointment by identifier.
func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appointment, nil
}

// ListByCustomer returns a customer's appointments.
func (s *AppointmentService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	appointments, err := s.appointments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// ListByProfessional returns a professional's appointments.
func (s *AppointmentService) ListByProfessional(ctx context.Context, professionalID string) ([]domain.Appointment, error) {
	appointments, err := s.appointments.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

var validStatusTransitions = map[domain.AppointmentStatus][]domain.AppointmentStatus{
	domain.AppointmentPending:   {domain.AppointmentConfirmed, domain.AppointmentCancelled},
	domain.AppointmentConfirmed: {domain.AppointmentCompleted, domain.AppointmentCancelled},
}

// UpdateStatus transitions an appointment. Only forward transitions
// from the lifecycle table are allowed.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validStatusTransitions[appointment.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, NewValidationError("cannot transition appointment from %s to %s", appointment.Status, status)
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	appointment.Status = status
	return appointment, nil
}

// Cancel marks the appointment cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.UpdateStatus(ctx, id, domain.AppointmentCancelled)
}
