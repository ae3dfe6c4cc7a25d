package domain

import "time"

// RoleName enumerates the fixed permission classes of the platform.
type RoleName string

const (
	RoleAdmin        RoleName = "ADMIN"
	RoleProfessional RoleName = "PROFESSIONAL"
	RoleCustomer     RoleName = "CUSTOMER"
)

// SeededRoleNames lists every role the startup seeder must guarantee.
func SeededRoleNames() []RoleName {
	return []RoleName{RoleAdmin, RoleProfessional, RoleCustomer}
}

// Role defines a named permission class.
type Role struct {
	ID        string
	Name      RoleName
	CreatedAt time.Time
}
