package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Users        *UserRepository
	Roles        *RoleRepository
	Tokens       *TokenBlacklistRepository
	Appointments *AppointmentRepository
	Reviews      *ReviewRepository
	Services     *ServiceRepository
	Payments     *PaymentRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(pool),
		Roles:        NewRoleRepository(pool),
		Tokens:       NewTokenBlacklistRepository(pool),
		Appointments: NewAppointmentRepository(pool),
		Reviews:      NewReviewRepository(pool),
		Services:     NewServiceRepository(pool),
		Payments:     NewPaymentRepository(pool),
	}
}
