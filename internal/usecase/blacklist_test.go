package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

func TestInvalidateAndLookup(t *testing.T) {
	repo := newBlacklistRepoStub()
	svc := NewTokenBlacklistService(repo, zap.NewNop())

	expiresAt := time.Now().UTC().Add(time.Hour)
	if err := svc.Invalidate(context.Background(), "token-a", expiresAt); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	found, err := svc.IsInvalidated(context.Background(), "token-a")
	if err != nil {
		t.Fatalf("IsInvalidated returned error: %v", err)
	}
	if !found {
		t.Fatal("expected token-a to be invalidated")
	}

	found, err = svc.IsInvalidated(context.Background(), "token-b")
	if err != nil {
		t.Fatalf("IsInvalidated returned error: %v", err)
	}
	if found {
		t.Fatal("token-b should not be invalidated")
	}
}

func TestInvalidateRejectsEmptyToken(t *testing.T) {
	svc := NewTokenBlacklistService(newBlacklistRepoStub(), zap.NewNop())

	if err := svc.Invalidate(context.Background(), "", time.Now()); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	repo := newBlacklistRepoStub()
	svc := NewTokenBlacklistService(repo, zap.NewNop())

	expiresAt := time.Now().UTC().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if err := svc.Invalidate(context.Background(), "token-a", expiresAt); err != nil {
			t.Fatalf("Invalidate call %d returned error: %v", i+1, err)
		}
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.records))
	}
	if repo.inserts != 3 {
		t.Fatalf("expected 3 insert attempts, got %d", repo.inserts)
	}
}

func TestCleanupExpiredRemovesOnlyPastExpiry(t *testing.T) {
	repo := newBlacklistRepoStub()
	svc := NewTokenBlacklistService(repo, zap.NewNop())

	now := time.Now().UTC()
	svc.now = func() time.Time { return now }

	repo.records["expired"] = domain.InvalidatedToken{Token: "expired", ExpiresAt: now.Add(-time.Minute)}
	repo.records["live"] = domain.InvalidatedToken{Token: "live", ExpiresAt: now.Add(time.Hour)}

	deleted, err := svc.CleanupExpired(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpired returned error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}

	if _, ok := repo.records["expired"]; ok {
		t.Error("expired record should be gone")
	}
	if _, ok := repo.records["live"]; !ok {
		t.Error("live record should remain")
	}
}

func TestRunSweepStopsOnContextCancel(t *testing.T) {
	repo := newBlacklistRepoStub()
	svc := NewTokenBlacklistService(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		svc.RunSweep(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweep did not stop after context cancellation")
	}
}
