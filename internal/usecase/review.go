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
	// ErrReviewNotFound indicates the requested review does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewNotAllowed indicates the appointment cannot be reviewed by
	// this customer in its current state.
	ErrReviewNotAllowed = errors.New("review not allowed")
)

// SubmitReviewInput captures the fields required to submit a review.
type SubmitReviewInput struct {
	CustomerID    string
	AppointmentID string
	Rating        int
	Comment       *string
}

// ReviewService manages reviews customers leave for professionals.
type ReviewService struct {
	reviews      port.ReviewRepository
	appointments port.AppointmentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews port.ReviewRepository, appointments port.AppointmentRepository, log *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:      reviews,
		appointments: appointments,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// Submit records a review for a completed appointment owned by the
// submitting customer.
func (s *ReviewService) Submit(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, input.AppointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("lookup appointment: %w", err)
	}

	if appointment.CustomerID != input.CustomerID {
		return nil, ErrReviewNotAllowed
	}
	if appointment.Status != domain.AppointmentCompleted {
		return nil, ErrReviewNotAllowed
	}

	review := domain.Review{
		ID:             uuid.NewString(),
		Rating:         input.Rating,
		Comment:        input.Comment,
		CustomerID:     input.CustomerID,
		ProfessionalID: appointment.ProfessionalID,
		AppointmentID:  appointment.ID,
		CreatedAt:      s.now(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return &review, nil
}

// Get retrieves a review by identifier.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// ListByProfessional returns reviews left for a professional.
func (s *ReviewService) ListByProfessional(ctx context.Context, professionalID string) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Update changes a review's rating and comment.
func (s *ReviewService) Update(ctx context.Context, id string, rating int, comment *string) (*domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	if err := s.reviews.Update(ctx, id, rating, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
