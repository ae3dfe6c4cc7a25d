package port

import (
	"context"
	"time"
)

// NotificationSender delivers outbound user notifications. All sends are
// fire-and-forget from the caller's perspective: a returned error is
// logged and never fails the triggering operation.
type NotificationSender interface {
	SendWelcome(ctx context.Context, email, firstName string) error
	SendAppointmentConfirmation(ctx context.Context, email, customerName, professionalName, serviceName string, startTime time.Time) error
}
