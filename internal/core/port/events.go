package port

import (
	"context"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
// Publishing is best-effort; callers log failures and continue.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishUserLoggedIn(ctx context.Context, event domain.UserLoggedInEvent) error
	PublishTokenRevoked(ctx context.Context, event domain.TokenRevokedEvent) error
	PublishAppointmentBooked(ctx context.Context, event domain.AppointmentBookedEvent) error
}
