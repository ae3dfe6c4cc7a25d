package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs booker.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"email":         event.Email,
		"role_id":       event.RoleID,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("user.registered", event.UserID, event.RegisteredAt, payload)
	return nil
}

// PublishUserLoggedIn logs booker.user.logged_in events.
func (p *StubPublisher) PublishUserLoggedIn(_ context.Context, event domain.UserLoggedInEvent) error {
	payload := map[string]any{
		"user_id":      event.UserID,
		"scope":        event.Scope,
		"logged_in_at": event.LoggedInAt,
	}
	p.logEvent("user.logged_in", event.UserID, event.LoggedInAt, payload)
	return nil
}

// PublishTokenRevoked logs booker.token.revoked events.
func (p *StubPublisher) PublishTokenRevoked(_ context.Context, event domain.TokenRevokedEvent) error {
	payload := map[string]any{
		"user_id":    event.UserID,
		"revoked_at": event.RevokedAt,
		"expires_at": event.ExpiresAt,
	}
	p.logEvent("token.revoked", event.UserID, event.RevokedAt, payload)
	return nil
}

// PublishAppointmentBooked logs booker.appointment.booked events.
func (p *StubPublisher) PublishAppointmentBooked(_ context.Context, event domain.AppointmentBookedEvent) error {
	payload := map[string]any{
		"appointment_id":  event.AppointmentID,
		"customer_id":     event.CustomerID,
		"professional_id": event.ProfessionalID,
		"service_id":      event.ServiceID,
		"start_time":      event.StartTime,
		"booked_at":       event.BookedAt,
	}
	p.logEvent("appointment.booked", event.CustomerID, event.BookedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
