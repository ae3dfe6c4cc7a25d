package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

func newPaymentFixture() (*PaymentService, *paymentRepoStub, *appointmentRepoStub) {
	payments := newPaymentRepoStub()
	appointments := newAppointmentRepoStub()
	svc := NewPaymentService(payments, appointments, zap.NewNop())
	return svc, payments, appointments
}

func TestProcessPayment(t *testing.T) {
	svc, payments, appointments := newPaymentFixture()
	appointments.appointments["appt-1"] = domain.Appointment{ID: "appt-1", CustomerID: "customer-1"}

	payment, err := svc.Process(context.Background(), ProcessPaymentInput{
		AppointmentID: "appt-1",
		CustomerID:    "customer-1",
		Amount:        49.90,
		Currency:      " eur ",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if payment.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", payment.Currency)
	}
	if payment.Status != domain.PaymentSucceeded {
		t.Errorf("status = %q, want %q", payment.Status, domain.PaymentSucceeded)
	}
	if _, ok := payments.payments[payment.ID]; !ok {
		t.Error("payment not persisted")
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	svc, _, appointments := newPaymentFixture()
	appointments.appointments["appt-1"] = domain.Appointment{ID: "appt-1"}

	cases := []struct {
		name  string
		input ProcessPaymentInput
	}{
		{"zero amount", ProcessPaymentInput{AppointmentID: "appt-1", Amount: 0, Currency: "EUR"}},
		{"negative amount", ProcessPaymentInput{AppointmentID: "appt-1", Amount: -5, Currency: "EUR"}},
		{"short currency", ProcessPaymentInput{AppointmentID: "appt-1", Amount: 10, Currency: "E"}},
		{"long currency", ProcessPaymentInput{AppointmentID: "appt-1", Amount: 10, Currency: "EURO"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Process(context.Background(), tc.input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestProcessPaymentMissingAppointment(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	_, err := svc.Process(context.Background(), ProcessPaymentInput{
		AppointmentID: "missing",
		Amount:        10,
		Currency:      "EUR",
	})
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestGetAndDeletePayment(t *testing.T) {
	svc, payments, _ := newPaymentFixture()
	payments.payments["pay-1"] = domain.Payment{ID: "pay-1", CustomerID: "customer-1"}

	payment, err := svc.Get(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if payment.CustomerID != "customer-1" {
		t.Errorf("customer id = %q, want customer-1", payment.CustomerID)
	}

	if err := svc.Delete(context.Background(), "pay-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound after delete, got %v", err)
	}
}
