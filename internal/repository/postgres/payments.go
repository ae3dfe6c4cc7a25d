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

// PaymentRepository implements port.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPaymentRepository wires a PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *PaymentRepository) WithTx(tx pgx.Tx) *PaymentRepository {
	if tx == nil {
		return r
	}
	return &PaymentRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new payment row.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) error {
	stmt, args, err := r.builder.Insert("booker.payments").
		Columns(
			"id",
			"amount",
			"currency",
			"status",
			"appointment_id",
			"customer_id",
			"provider_ref",
			"created_at",
		).
		Values(
			payment.ID,
			payment.Amount,
			payment.Currency,
			string(payment.Status),
			payment.AppointmentID,
			payment.CustomerID,
			payment.ProviderRef,
			payment.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by identifier.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"amount",
			"currency",
			"status",
			"appointment_id",
			"customer_id",
			"provider_ref",
			"created_at",
		).
		From("booker.payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select payment sql: %w", err)
	}

	var (
		payment     domain.Payment
		status      string
		providerRef sql.NullString
	)

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&payment.ID,
		&payment.Amount,
		&payment.Currency,
		&status,
		&payment.AppointmentID,
		&payment.CustomerID,
		&providerRef,
		&payment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	payment.Status = domain.PaymentStatus(status)
	if providerRef.Valid {
		value := providerRef.String
		payment.ProviderRef = &value
	}

	return &payment, nil
}

// ListByCustomer returns a customer's payments, newest first.
func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	stmt, args, err := r.builder.
		Select(
			"id",
			"amount",
			"currency",
			"status",
			"appointment_id",
			"customer_id",
			"provider_ref",
			"created_at",
		).
		From("booker.payments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var (
			payment     domain.Payment
			status      string
			providerRef sql.NullString
		)
		if err := rows.Scan(
			&payment.ID,
			&payment.Amount,
			&payment.Currency,
			&status,
			&payment.AppointmentID,
			&payment.CustomerID,
			&providerRef,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payment.Status = domain.PaymentStatus(status)
		if providerRef.Valid {
			value := providerRef.String
			payment.ProviderRef = &value
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

// Delete removes a payment row.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("booker.payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete payment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.PaymentRepository = (*PaymentRepository)(nil)
