package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/repository"
)

// ReviewRepository implements port.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewReviewRepository wires a PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *ReviewRepository) WithTx(tx pgx.Tx) *ReviewRepository {
	if tx == nil {
		return r
	}
	return &ReviewRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new review row.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) error {
	stmt, args, err := r.builder.Insert("booker.reviews").
		Columns(
			"id",
			"rating",
			"comment",
			"customer_id",
			"professional_id",
			"appointment_id",
			"created_at",
		).
		Values(
			review.ID,
			review.Rating,
			review.Comment,
			review.CustomerID,
			review.ProfessionalID,
			review.AppointmentID,
			review.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert review sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"rating",
			"comment",
			"customer_id",
			"professional_id",
			"appointment_id",
			"created_at",
		).
		From("booker.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select review sql: %w", err)
	}

	var (
		review  domain.Review
		comment sql.NullString
	)

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&review.ID,
		&review.Rating,
		&comment,
		&review.CustomerID,
		&review.ProfessionalID,
		&review.AppointmentID,
		&review.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	if comment.Valid {
		value := comment.String
		review.Comment = &value
	}

	return &review, nil
}

// GetOwnerID returns the customer id that authored the review.
func (r *ReviewRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	stmt, args, err := r.builder.
		Select("customer_id").
		From("booker.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select review owner sql: %w", err)
	}

	var ownerID string
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("scan review owner: %w", err)
	}

	return ownerID, nil
}

// ListByProfessional returns all reviews left for a professional.
func (r *ReviewRepository) ListByProfessional(ctx context.Context, professionalID string) ([]domain.Review, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"rating",
			"comment",
			"customer_id",
			"professional_id",
			"appointment_id",
			"created_at",
		).
		From("booker.reviews").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			review  domain.Review
			comment sql.NullString
		)
		if err := rows.Scan(
			&review.ID,
			&review.Rating,
			&comment,
			&review.CustomerID,
			&review.ProfessionalID,
			&review.AppointmentID,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		if comment.Valid {
			value := comment.String
			review.Comment = &value
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// Update changes a review's rating and comment.
func (r *ReviewRepository) Update(ctx context.Context, id string, rating int, comment *string) error {
	stmt, args, err := r.builder.
		Update("booker.reviews").
		Set("rating", rating).
		Set("comment", comment).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update review sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a review row.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("booker.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.ReviewRepository = (*ReviewRepository)(nil)
