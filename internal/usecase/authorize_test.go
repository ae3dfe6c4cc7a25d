package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/infra/security"
)

func principalWith(subject, scope string) *Principal {
	return &Principal{
		Token: "test-token",
		Claims: &security.AccessTokenClaims{
			Scope: scope,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: subject,
			},
		},
	}
}

func newAuthorizerFixture() (*OwnershipAuthorizer, *ownerLookupStub, *ownerLookupStub, *ownerLookupStub) {
	appointments := &ownerLookupStub{owners: map[string]string{}}
	reviews := &ownerLookupStub{owners: map[string]string{}}
	services := &ownerLookupStub{owners: map[string]string{}}
	authz := NewOwnershipAuthorizer(appointments, reviews, services, zap.NewNop())
	return authz, appointments, reviews, services
}

func TestIsAdmin(t *testing.T) {
	authz, _, _, _ := newAuthorizerFixture()

	cases := []struct {
		name      string
		principal *Principal
		want      bool
	}{
		{"admin scope", principalWith("user-1", "ADMIN"), true},
		{"customer scope", principalWith("user-1", "CUSTOMER"), false},
		{"lowercase admin", principalWith("user-1", "admin"), false},
		{"empty scope", principalWith("user-1", ""), false},
		{"nil principal", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := authz.IsAdmin(tc.principal); got != tc.want {
				t.Fatalf("IsAdmin = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	authz, _, _, _ := newAuthorizerFixture()

	cases := []struct {
		name      string
		principal *Principal
		ownerID   string
		want      bool
	}{
		{"match", principalWith("user-1", "CUSTOMER"), "user-1", true},
		{"mismatch", principalWith("user-1", "CUSTOMER"), "user-2", false},
		{"empty subject", principalWith("", "CUSTOMER"), "user-1", false},
		{"empty owner", principalWith("user-1", "CUSTOMER"), "", false},
		{"both empty", principalWith("", "CUSTOMER"), "", false},
		{"nil principal", nil, "user-1", false},
		{"nil claims", &Principal{Token: "t"}, "user-1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := authz.IsOwner(tc.principal, tc.ownerID); got != tc.want {
				t.Fatalf("IsOwner = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsAdminOrOwner(t *testing.T) {
	authz, _, _, _ := newAuthorizerFixture()

	if !authz.IsAdminOrOwner(principalWith("user-9", "ADMIN"), "someone-else") {
		t.Error("admin should pass regardless of ownership")
	}
	if !authz.IsAdminOrOwner(principalWith("user-1", "CUSTOMER"), "user-1") {
		t.Error("owner should pass")
	}
	if authz.IsAdminOrOwner(principalWith("user-1", "CUSTOMER"), "user-2") {
		t.Error("non-admin non-owner should be denied")
	}
}

func TestResourceOwnershipPredicates(t *testing.T) {
	authz, appointments, reviews, services := newAuthorizerFixture()
	appointments.owners["appt-1"] = "customer-1"
	reviews.owners["review-1"] = "customer-1"
	services.owners["svc-1"] = "pro-1"

	ctx := context.Background()

	if !authz.IsAppointmentOwner(ctx, principalWith("customer-1", "CUSTOMER"), "appt-1") {
		t.Error("appointment owner should pass")
	}
	if authz.IsAppointmentOwner(ctx, principalWith("customer-2", "CUSTOMER"), "appt-1") {
		t.Error("non-owner should be denied")
	}
	if authz.IsAppointmentOwner(ctx, principalWith("customer-1", "CUSTOMER"), "missing") {
		t.Error("missing appointment should deny")
	}

	if !authz.IsReviewOwner(ctx, principalWith("customer-1", "CUSTOMER"), "review-1") {
		t.Error("review owner should pass")
	}
	if authz.IsReviewOwner(ctx, principalWith("pro-1", "PROFESSIONAL"), "review-1") {
		t.Error("professional is not the review owner")
	}

	if !authz.IsServiceOwner(ctx, principalWith("pro-1", "PROFESSIONAL"), "svc-1") {
		t.Error("service owner should pass")
	}
	if authz.IsServiceOwner(ctx, principalWith("customer-1", "CUSTOMER"), "svc-1") {
		t.Error("customer is not the service owner")
	}
}

func TestOwnershipLookupFailureDenies(t *testing.T) {
	authz, appointments, _, _ := newAuthorizerFixture()
	appointments.err = errors.New("database down")

	if authz.IsAppointmentOwner(context.Background(), principalWith("customer-1", "CUSTOMER"), "appt-1") {
		t.Fatal("lookup failure must deny, never allow")
	}
}

func TestOwnershipWithNilPrincipalNeverPanics(t *testing.T) {
	authz, appointments, _, _ := newAuthorizerFixture()
	appointments.owners["appt-1"] = "customer-1"

	if authz.IsAppointmentOwner(context.Background(), nil, "appt-1") {
		t.Fatal("nil principal must deny")
	}
	if authz.IsOwner(nil, "customer-1") {
		t.Fatal("nil principal must deny")
	}
	if authz.IsAdmin(nil) {
		t.Fatal("nil principal must deny")
	}
}
