package port

import (
	"context"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

// UserRepository exposes persistence behavior for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName string) error
	UpdateProfileImage(ctx context.Context, id string, imageURL *string) error
	Delete(ctx context.Context, id string) error
}
