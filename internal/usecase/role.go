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

var (
	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameTaken indicates a role with the same name already exists.
	ErrRoleNameTaken = errors.New("role name taken")
)

// RoleService manages the platform's role catalog.
type RoleService struct {
	roles  port.RoleRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewRoleService constructs a RoleService.
func NewRoleService(roles port.RoleRepository, log *zap.Logger) *RoleService {
	return &RoleService{
		roles:  roles,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Seed guarantees the fixed platform roles exist. Each role is checked
// by name before insertion so repeated startups never duplicate rows
// or fail.
func (s *RoleService) Seed(ctx context.Context) error {
	for _, name := range domain.SeededRoleNames() {
		exists, err := s.roles.ExistsByName(ctx, name)
		if err != nil {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if exists {
			continue
		}

		role := domain.Role{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: s.now(),
		}

		if err := s.roles.Create(ctx, role); err != nil {
			// A concurrent seeder may have won the insert race.
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("seed role %s: %w", name, err)
		}

		s.logger.Info("role seeded", zap.String("role", string(name)))
	}

	return nil
}

// Create adds a new role with the supplied name.
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("role name is required")
	}

	role := domain.Role{
		ID:        uuid.NewString(),
		Name:      domain.RoleName(name),
		CreatedAt: s.now(),
	}

	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	return &role, nil
}

// Get retrieves a role by identifier.
func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// List returns every role.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// Update renames a role.
func (s *RoleService) Update(ctx context.Context, id, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("role name is required")
	}

	role := domain.Role{ID: id, Name: domain.RoleName(name)}
	if err := s.roles.Update(ctx, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrRoleNameTaken
		default:
			return nil, fmt.Errorf("update role: %w", err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a role.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
