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

// AppointmentRepository implements port.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAppointmentRepository wires a PostgreSQL-backed appointment repository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *AppointmentRepository) WithTx(tx pgx.Tx) *AppointmentRepository {
	if tx == nil {
		return r
	}
	return &AppointmentRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new appointment row.
func (r *AppointmentRepository) Create(ctx context.Context, appointment domain.Appointment) error {
	stmt, args, err := r.builder.Insert("booker.appointments").
		Columns(
			"id",
			"start_time",
			"end_time",
			"status",
			"customer_id",
			"professional_id",
			"service_id",
			"created_at",
		).
		Values(
			appointment.ID,
			appointment.StartTime,
			appointment.EndTime,
			string(appointment.Status),
			appointment.CustomerID,
			appointment.ProfessionalID,
			appointment.ServiceID,
			appointment.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert appointment sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	return nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var (
		appointment domain.Appointment
		status      string
	)

	if err := row.Scan(
		&appointment.ID,
		&appointment.StartTime,
		&appointment.EndTime,
		&status,
		&appointment.CustomerID,
		&appointment.ProfessionalID,
		&appointment.ServiceID,
		&appointment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}

	appointment.Status = domain.AppointmentStatus(status)
	return &appointment, nil
}

func (r *AppointmentRepository) selectColumns() squirrel.SelectBuilder {
	return r.builder.Select(
		"id",
		"start_time",
		"end_time",
		"status",
		"customer_id",
		"professional_id",
		"service_id",
		"created_at",
	).From("booker.appointments")
}

// GetByID retrieves an appointment by identifier.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	stmt, args, err := r.selectColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select appointment sql: %w", err)
	}

	return scanAppointment(r.exec.QueryRow(ctx, stmt, args...))
}

// GetOwnerID returns the customer id that booked the appointment.
func (r *AppointmentRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	stmt, args, err := r.builder.
		Select("customer_id").
		From("booker.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select appointment owner sql: %w", err)
	}

	var ownerID string
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("scan appointment owner: %w", err)
	}

	return ownerID, nil
}

func (r *AppointmentRepository) list(ctx context.Context, where squirrel.Eq) ([]domain.Appointment, error) {
	stmt, args, err := r.selectColumns().
		Where(where).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var (
			appointment domain.Appointment
			status      string
		)
		if err := rows.Scan(
			&appointment.ID,
			&appointment.StartTime,
			&appointment.EndTime,
			&status,
			&appointment.CustomerID,
			&appointment.ProfessionalID,
			&appointment.ServiceID,
			&appointment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointment.Status = domain.AppointmentStatus(status)
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

// ListByCustomer returns a customer's appointments ordered by start time.
func (r *AppointmentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"customer_id": customerID})
}

// ListByProfessional returns a professional's appointments ordered by start time.
func (r *AppointmentRepository) ListByProfessional(ctx context.Context, professionalID string) ([]domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"professional_id": professionalID})
}

// UpdateStatus transitions an appointment to the supplied status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	stmt, args, err := r.builder.
		Update("booker.appointments").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an appointment row.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("booker.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.AppointmentRepository = (*AppointmentRepository)(nil)
