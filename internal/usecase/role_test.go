package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

func TestSeedCreatesAllRoles(t *testing.T) {
	repo := newRoleRepoStub()
	svc := NewRoleService(repo, zap.NewNop())

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	for _, name := range domain.SeededRoleNames() {
		if _, err := repo.GetByName(context.Background(), name); err != nil {
			t.Errorf("role %s not seeded: %v", name, err)
		}
	}
	if len(repo.roles) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(repo.roles))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newRoleRepoStub()
	svc := NewRoleService(repo, zap.NewNop())

	for i := 0; i < 3; i++ {
		if err := svc.Seed(context.Background()); err != nil {
			t.Fatalf("Seed run %d returned error: %v", i+1, err)
		}
	}

	if len(repo.roles) != 3 {
		t.Fatalf("expected 3 roles after repeated seeding, got %d", len(repo.roles))
	}
}

func TestSeedPreservesExistingRoleIDs(t *testing.T) {
	repo := newRoleRepoStub()
	svc := NewRoleService(repo, zap.NewNop())

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	before, err := repo.GetByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GetByName returned error: %v", err)
	}

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}
	after, err := repo.GetByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GetByName returned error: %v", err)
	}

	if before.ID != after.ID {
		t.Fatal("reseeding must not replace existing role rows")
	}
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	repo := newRoleRepoStub()
	svc := NewRoleService(repo, zap.NewNop())

	if _, err := svc.Create(context.Background(), "SUPPORT"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "SUPPORT"); !errors.Is(err, ErrRoleNameTaken) {
		t.Fatalf("expected ErrRoleNameTaken, got %v", err)
	}
}

func TestCreateRoleRejectsEmptyName(t *testing.T) {
	svc := NewRoleService(newRoleRepoStub(), zap.NewNop())

	_, err := svc.Create(context.Background(), "   ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRoleCRUD(t *testing.T) {
	repo := newRoleRepoStub()
	svc := NewRoleService(repo, zap.NewNop())

	role, err := svc.Create(context.Background(), "SUPPORT")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), role.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "SUPPORT" {
		t.Errorf("name = %q, want SUPPORT", got.Name)
	}

	updated, err := svc.Update(context.Background(), role.ID, "HELPDESK")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "HELPDESK" {
		t.Errorf("updated name = %q, want HELPDESK", updated.Name)
	}

	if err := svc.Delete(context.Background(), role.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), role.ID); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound after delete, got %v", err)
	}
}

func TestRoleOperationsOnMissingRole(t *testing.T) {
	svc := NewRoleService(newRoleRepoStub(), zap.NewNop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("Get: expected ErrRoleNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", "X"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("Update: expected ErrRoleNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("Delete: expected ErrRoleNotFound, got %v", err)
	}
}
