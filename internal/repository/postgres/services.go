package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/core/port"
	"github.com/bookerhq/booker-backend/internal/repository"
)

// ServiceRepository implements port.ServiceRepository using PostgreSQL.
type ServiceRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewServiceRepository wires a PostgreSQL-backed catalog repository.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *ServiceRepository) WithTx(tx pgx.Tx) *ServiceRepository {
	if tx == nil {
		return r
	}
	return &ServiceRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new catalog entry.
func (r *ServiceRepository) Create(ctx context.Context, service domain.Service) error {
	stmt, args, err := r.builder.Insert("booker.services").
		Columns(
			"id",
			"name",
			"description",
			"duration_minutes",
			"price",
			"professional_id",
			"active",
			"created_at",
		).
		Values(
			service.ID,
			service.Name,
			service.Description,
			service.DurationMinutes,
			service.Price,
			service.ProfessionalID,
			service.Active,
			service.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert service sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}

	return nil
}

func (r *ServiceRepository) selectColumns() squirrel.SelectBuilder {
	return r.builder.Select(
		"id",
		"name",
		"description",
		"duration_minutes",
		"price",
		"professional_id",
		"active",
		"created_at",
	).From("booker.services")
}

// GetByID retrieves a catalog entry by identifier.
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	stmt, args, err := r.selectColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select service sql: %w", err)
	}

	var service domain.Service
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.ProfessionalID,
		&service.Active,
		&service.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}

	return &service, nil
}

// GetOwnerID returns the professional id that owns the catalog entry.
func (r *ServiceRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	stmt, args, err := r.builder.
		Select("professional_id").
		From("booker.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select service owner sql: %w", err)
	}

	var ownerID string
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("scan service owner: %w", err)
	}

	return ownerID, nil
}

// List returns catalog entries, optionally restricted to active ones.
func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	query := r.selectColumns().OrderBy("name ASC")
	if activeOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list services sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.DurationMinutes,
			&service.Price,
			&service.ProfessionalID,
			&service.Active,
			&service.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

// Update rewrites a catalog entry's mutable fields.
func (r *ServiceRepository) Update(ctx context.Context, service domain.Service) error {
	stmt, args, err := r.builder.
		Update("booker.services").
		Set("name", service.Name).
		Set("description", service.Description).
		Set("duration_minutes", service.DurationMinutes).
		Set("price", service.Price).
		Set("active", service.Active).
		Where(squirrel.Eq{"id": service.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a catalog entry.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("booker.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.ServiceRepository = (*ServiceRepository)(nil)
