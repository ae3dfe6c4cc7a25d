package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
)

// ErrTokenInvalidated indicates a token that verified correctly but was
// explicitly revoked by logout.
var ErrTokenInvalidated = errors.New("token invalidated")

// TokenBlacklistService manages the durable blacklist of revoked
// bearer tokens and its periodic cleanup.
type TokenBlacklistService struct {
	repo   port.TokenBlacklistRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenBlacklistService constructs a TokenBlacklistService.
func NewTokenBlacklistService(repo port.TokenBlacklistRepository, log *zap.Logger) *TokenBlacklistService {
	return &TokenBlacklistService{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Invalidate records the token as revoked until expiresAt. Repeated
// calls with the same token are idempotent.
func (s *TokenBlacklistService) Invalidate(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	record := domain.InvalidatedToken{
		Token:         token,
		InvalidatedAt: s.now(),
		ExpiresAt:     expiresAt,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return fmt.Errorf("insert invalidated token: %w", err)
	}

	return nil
}

// IsInvalidated reports whether the exact token value was revoked.
func (s *TokenBlacklistService) IsInvalidated(ctx context.Context, token string) (bool, error) {
	return s.repo.Exists(ctx, token)
}

// CleanupExpired removes blacklist rows whose tokens have passed their
// own expiry and no longer need tracking.
func (s *TokenBlacklistService) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpiredBefore(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("expired blacklist entries removed",
			zap.Int64("deleted", deleted),
		)
	}

	return deleted, nil
}

// RunSweep blocks running the cleanup on the given interval until the
// context is cancelled. A failed sweep is logged and retried on the
// next tick.
func (s *TokenBlacklistService) RunSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("token blacklist sweep started",
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("token blacklist sweep stopped")
			return
		case <-ticker.C:
			if _, err := s.CleanupExpired(ctx); err != nil {
				s.logger.Error("token blacklist sweep failed", zap.Error(err))
			}
		}
	}
}
