package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
)

// OwnershipAuthorizer answers yes/no ownership and role questions for
// guarded resources. Every predicate returns false on missing or
// malformed input instead of erroring; a lookup failure also denies.
type OwnershipAuthorizer struct {
	appointments port.OwnerLookup
	reviews      port.OwnerLookup
	services     port.OwnerLookup
	logger       *zap.Logger
}

// NewOwnershipAuthorizer constructs an OwnershipAuthorizer.
func NewOwnershipAuthorizer(
	appointments port.OwnerLookup,
	reviews port.OwnerLookup,
	services port.OwnerLookup,
	log *zap.Logger,
) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{
		appointments: appointments,
		reviews:      reviews,
		services:     services,
		logger:       log,
	}
}

func subjectOf(principal *Principal) string {
	if principal == nil {
		return ""
	}
	return strings.TrimSpace(principal.UserID())
}

// IsAdmin reports whether the principal's scope is exactly the admin
// role name. Comparison is case-sensitive.
func (a *OwnershipAuthorizer) IsAdmin(principal *Principal) bool {
	if principal == nil {
		return false
	}
	return principal.Scope() == string(domain.RoleAdmin)
}

// IsOwner reports whether the principal's subject equals the supplied
// owner id. Empty subjects or owner ids never match.
func (a *OwnershipAuthorizer) IsOwner(principal *Principal, ownerID string) bool {
	subject := subjectOf(principal)
	if subject == "" || ownerID == "" {
		return false
	}
	return subject == ownerID
}

// IsAdminOrOwner combines the admin and ownership checks.
func (a *OwnershipAuthorizer) IsAdminOrOwner(principal *Principal, ownerID string) bool {
	return a.IsAdmin(principal) || a.IsOwner(principal, ownerID)
}

func (a *OwnershipAuthorizer) ownsResource(ctx context.Context, lookup port.OwnerLookup, principal *Principal, resourceID, kind string) bool {
	subject := subjectOf(principal)
	if subject == "" || resourceID == "" {
		return false
	}

	ownerID, err := lookup.GetOwnerID(ctx, resourceID)
	if err != nil {
		a.logger.Debug("ownership lookup denied",
			zap.String("resource_kind", kind),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
		return false
	}

	return subject == ownerID
}

// IsAppointmentOwner reports whether the principal booked the appointment.
func (a *OwnershipAuthorizer) IsAppointmentOwner(ctx context.Context, principal *Principal, appointmentID string) bool {
	return a.ownsResource(ctx, a.appointments, principal, appointmentID, "appointment")
}

// IsReviewOwner reports whether the principal authored the review.
func (a *OwnershipAuthorizer) IsReviewOwner(ctx context.Context, principal *Principal, reviewID string) bool {
	return a.ownsResource(ctx, a.reviews, principal, reviewID, "review")
}

// IsServiceOwner reports whether the principal owns the catalog entry.
func (a *OwnershipAuthorizer) IsServiceOwner(ctx context.Context, principal *Principal, serviceID string) bool {
	return a.ownsResource(ctx, a.services, principal, serviceID, "service")
}
