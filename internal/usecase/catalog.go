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

// ErrServiceNotFound indicates the requested catalog entry does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ServiceInput captures the mutable fields of a catalog entry.
type ServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	Active          bool
}

// CatalogService manages the bookable services professionals offer.
type CatalogService struct {
	services port.ServiceRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(services port.ServiceRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		services: services,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func validateServiceInput(input ServiceInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return NewValidationError("service name is required")
	}
	if input.DurationMinutes <= 0 {
		return NewValidationError("duration must be positive")
	}
	if input.Price < 0 {
		return NewValidationError("price cannot be negative")
	}
	return nil
}

// Add creates a catalog entry owned by the professional.
func (s *CatalogService) Add(ctx context.Context, professionalID string, input ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	service := domain.Service{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		ProfessionalID:  professionalID,
		Active:          input.Active,
		CreatedAt:       s.now(),
	}

	if err := s.services.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	return &service, nil
}

// Get retrieves a catalog entry by identifier.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return service, nil
}

// List returns catalog entries, optionally active ones only.
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	services, err := s.services.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// Update rewrites a catalog entry's mutable fields.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = strings.TrimSpace(input.Name)
	current.Description = input.Description
	current.DurationMinutes = input.DurationMinutes
	current.Price = input.Price
	current.Active = input.Active

	if err := s.services.Update(ctx, *current); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}

	return current, nil
}

// Delete removes a catalog entry.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
