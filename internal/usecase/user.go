package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/infra/security"
	"github.com/bookerhq/booker-backend/internal/repository"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserService manages user accounts and profile images.
type UserService struct {
	users   port.UserRepository
	storage port.ObjectStorage
	hasher  *security.PasswordHasher
	logger  *zap.Logger
	now     func() time.Time
}

// NewUserService constructs a UserService.
func NewUserService(users port.UserRepository, storage port.ObjectStorage, hasher *security.PasswordHasher, log *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		storage: storage,
		hasher:  hasher,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get retrieves a user by identifier.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateProfile changes the user's display names.
func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, NewValidationError("first name is required")
	}
	if lastName == "" {
		return nil, NewValidationError("last name is required")
	}

	if err := s.users.UpdateProfile(ctx, id, firstName, lastName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes the user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// SetProfileImage stores the uploaded image and records its URL on the
// user. A previous image is overwritten by key, never orphaned.
func (s *UserService) SetProfileImage(ctx context.Context, id, contentType string, body io.Reader, size int64) (*domain.User, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, NewValidationError("unsupported image type %q", contentType)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("profile-images", uuid.NewString()+ext)
	url, err := s.storage.Put(ctx, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("store profile image: %w", err)
	}

	if err := s.users.UpdateProfileImage(ctx, id, &url); err != nil {
		if removeErr := s.storage.Remove(ctx, key); removeErr != nil {
			s.logger.Warn("orphaned profile image cleanup failed",
				zap.String("key", key),
				zap.Error(removeErr),
			)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile image: %w", err)
	}

	s.removeOldImage(ctx, user.ProfileImageURL)

	user.ProfileImageURL = &url
	return user, nil
}

// RemoveProfileImage clears the user's image URL and deletes the blob.
func (s *UserService) RemoveProfileImage(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.UpdateProfileImage(ctx, id, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("clear profile image: %w", err)
	}

	s.removeOldImage(ctx, user.ProfileImageURL)
	return nil
}

func (s *UserService) removeOldImage(ctx context.Context, imageURL *string) {
	if imageURL == nil || *imageURL == "" {
		return
	}

	// URLs are baseURL + "/" + key with keys under profile-images/.
	idx := strings.Index(*imageURL, "profile-images/")
	if idx < 0 {
		return
	}

	key := (*imageURL)[idx:]
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.Warn("remove profile image blob failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
