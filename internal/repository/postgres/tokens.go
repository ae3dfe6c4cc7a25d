package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
)

// TokenBlacklistRepository implements port.TokenBlacklistRepository
// over the invalidated_tokens table.
type TokenBlacklistRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTokenBlacklistRepository constructs a repository backed by any
// executor that satisfies pgExecutor.
func NewTokenBlacklistRepository(exec pgExecutor) *TokenBlacklistRepository {
	repo := &TokenBlacklistRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance executing within the provided transaction.
func (r *TokenBlacklistRepository) WithTx(tx pgx.Tx) *TokenBlacklistRepository {
	if tx == nil {
		return r
	}
	return &TokenBlacklistRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Insert records an invalidated token. The token column carries a
// unique constraint and the insert ignores conflicts, so repeated
// logouts with the same token are no-ops.
func (r *TokenBlacklistRepository) Insert(ctx context.Context, record domain.InvalidatedToken) error {
	stmt, args, err := r.builder.Insert("booker.invalidated_tokens").
		Columns("token", "invalidated_at", "expires_at").
		Values(record.Token, record.InvalidatedAt, record.ExpiresAt).
		Suffix("ON CONFLICT (token) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert invalidated token sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert invalidated token: %w", err)
	}

	return nil
}

// Exists reports whether the exact token value has been blacklisted.
func (r *TokenBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("booker.invalidated_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists invalidated token sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query invalidated token: %w", err)
	}

	return true, nil
}

// DeleteExpiredBefore removes blacklist rows whose tokens expired
// before the cutoff, returning the number deleted.
func (r *TokenBlacklistRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	stmt, args, err := r.builder.
		Delete("booker.invalidated_tokens").
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired tokens sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

var _ port.TokenBlacklistRepository = (*TokenBlacklistRepository)(nil)
