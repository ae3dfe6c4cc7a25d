package port

import (
	"context"
	"time"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

// TokenBlacklistRepository stores explicitly invalidated bearer tokens.
// Insert must be idempotent on the token value: concurrent logouts with
// the same token result in exactly one row.
type TokenBlacklistRepository interface {
	Insert(ctx context.Context, record domain.InvalidatedToken) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
