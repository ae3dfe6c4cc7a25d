package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/repository"
)

// ErrPaymentNotFound indicates the requested payment does not exist.
var ErrPaymentNotFound = errors.New("payment not found")

// ProcessPaymentInput captures the fields required to record a charge.
type ProcessPaymentInput struct {
	AppointmentID string
	CustomerID    string
	Amount        float64
	Currency      string
	ProviderRef   *string
}

// PaymentService records charge attempts for appointments. Actual card
// processing happens at the provider; this service only tracks outcomes.
type PaymentService struct {
	payments     port.PaymentRepository
	appointments port.AppointmentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(payments port.PaymentRepository, appointments port.AppointmentRepository, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments:     payments,
		appointments: appointments,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Process validates the appointment reference and records the payment
// as succeeded.
func (s *PaymentService) Process(ctx context.Context, input ProcessPaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, NewValidationError("amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if len(currency) != 3 {
		return nil, NewValidationError("currency must be a 3-letter code")
	}

	if _, err := s.appointments.GetByID(ctx, input.AppointmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("lookup appointment: %w", err)
	}

	payment := domain.Payment{
		ID:            uuid.NewString(),
		Amount:        input.Amount,
		Currency:      currency,
		Status:        domain.PaymentSucceeded,
		AppointmentID: input.AppointmentID,
		CustomerID:    input.CustomerID,
		ProviderRef:   input.ProviderRef,
		CreatedAt:     s.now(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return &payment, nil
}

// Get retrieves a payment by identifier.
func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// ListByCustomer returns a customer's payments.
func (s *PaymentService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	payments, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Delete removes a payment record.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.payments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
