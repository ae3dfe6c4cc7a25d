package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/infra/logger"
	"github.com/bookerhq/booker-backend/internal/infra/security"
	"github.com/bookerhq/booker-backend/internal/repository"
)

var (
	// ErrEmailAlreadyExists indicates the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials indicates the provided email or password are incorrect.
	// Unknown accounts and wrong passwords map to the same error on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleRegistryUnavailable indicates the seeded default role is missing.
	ErrRoleRegistryUnavailable = errors.New("role registry unavailable")
	// ErrTokenNotActive indicates a logout attempt with a token that never
	// passed verification.
	ErrTokenNotActive = errors.New("token not active")
)

// ValidationError carries a user-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError constructs a ValidationError with the supplied message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Principal is the authenticated identity attached to a request after
// token verification.
type Principal struct {
	Token  string
	Claims *security.AccessTokenClaims
}

// UserID returns the subject claim.
func (p Principal) UserID() string {
	if p.Claims == nil {
		return ""
	}
	return p.Claims.Subject
}

// Scope returns the role name claim.
func (p Principal) Scope() string {
	if p.Claims == nil {
		return ""
	}
	return p.Claims.Scope
}

// RegisterInput captures the fields required to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string
	User  domain.User
	Scope string
}

// AuthService coordinates registration, login, and logout flows.
type AuthService struct {
	users         port.UserRepository
	roles         port.RoleRepository
	blacklist     *TokenBlacklistService
	hasher        *security.PasswordHasher
	tokens        *security.TokenIssuer
	events        port.EventPublisher
	notifications port.NotificationSender
	logger        *zap.Logger
	now           func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	users port.UserRepository,
	roles port.RoleRepository,
	blacklist *TokenBlacklistService,
	hasher *security.PasswordHasher,
	tokens *security.TokenIssuer,
	events port.EventPublisher,
	notifications port.NotificationSender,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		roles:         roles,
		blacklist:     blacklist,
		hasher:        hasher,
		tokens:        tokens,
		events:        events,
		notifications: notifications,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeEmail lowercases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegisterInput(input RegisterInput) error {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email is not a valid address")
	}
	if len(input.Password) < security.MinPasswordLength || len(input.Password) > security.MaxPasswordLength {
		return NewValidationError("password must be between %d and %d characters", security.MinPasswordLength, security.MaxPasswordLength)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return NewValidationError("first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return NewValidationError("last name is required")
	}
	return nil
}

// Register creates a customer account. The database unique constraint
// on email is the authoritative guard; the pre-check only provides a
// friendlier fast path under no contention.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := NormalizeEmail(input.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	role, err := s.roles.GetByName(ctx, domain.RoleCustomer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleRegistryUnavailable
		}
		return nil, fmt.Errorf("lookup customer role: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, NewValidationError("password must be between %d and %d characters", security.MinPasswordLength, security.MaxPasswordLength)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		RoleID:       role.ID,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishRegistered(ctx, user)
	s.sendWelcome(ctx, user)

	return &user, nil
}

func (s *AuthService) publishRegistered(ctx context.Context, user domain.User) {
	if s.events == nil {
		return
	}
	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Email:        user.Email,
		RoleID:       user.RoleID,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.events.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("publish user registered event failed",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}
}

func (s *AuthService) sendWelcome(ctx context.Context, user domain.User) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
		s.logger.Warn("welcome notification failed",
			zap.String("email", logger.MaskEmail(user.Email)),
			zap.Error(err),
		)
	}
}

// Login verifies credentials and issues an access token. The scope
// claim carries the role name; when the user's role reference no
// longer resolves, the scope falls back to the customer role name so
// login keeps working with least privilege.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	scope := string(domain.RoleCustomer)
	role, err := s.roles.GetByID(ctx, user.RoleID)
	switch {
	case err == nil:
		scope = string(role.Name)
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("user role reference does not resolve, falling back to customer scope",
			zap.String("user_id", user.ID),
			zap.String("role_id", user.RoleID),
		)
	default:
		return nil, fmt.Errorf("lookup role: %w", err)
	}

	token, err := s.tokens.Issue(user, scope)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.events != nil {
		event := domain.UserLoggedInEvent{
			EventID:    uuid.NewString(),
			UserID:     user.ID,
			Scope:      scope,
			LoggedInAt: s.now(),
		}
		if err := s.events.PublishUserLoggedIn(ctx, event); err != nil {
			s.logger.Warn("publish user logged in event failed",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	return &LoginResult{Token: token, User: *user, Scope: scope}, nil
}

// Logout blacklists the presented token until its natural expiry. The
// token must still verify; logging out twice with the same token is a
// no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ErrTokenNotActive
	}

	expiresAt := s.now().Add(s.tokens.TTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.blacklist.Invalidate(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	if s.events != nil {
		event := domain.TokenRevokedEvent{
			EventID:   uuid.NewString(),
			UserID:    claims.Subject,
			RevokedAt: s.now(),
			ExpiresAt: expiresAt,
		}
		if err := s.events.PublishTokenRevoked(ctx, event); err != nil {
			s.logger.Warn("publish token revoked event failed",
				zap.String("user_id", claims.Subject),
				zap.Error(err),
			)
		}
	}

	return nil
}

// VerifyToken parses the token and checks the blacklist, returning the
// request principal. Signature and expiry failures surface before the
// blacklist lookup runs.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	invalidated, err := s.blacklist.IsInvalidated(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if invalidated {
		return nil, ErrTokenInvalidated
	}

	return &Principal{Token: token, Claims: claims}, nil
}
