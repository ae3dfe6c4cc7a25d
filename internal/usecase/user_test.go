package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

func newUserFixture() (*UserService, *userRepoStub, *objectStorageStub) {
	users := newUserRepoStub()
	storage := newObjectStorageStub()
	svc := NewUserService(users, storage, nil, zap.NewNop())
	return svc, users, storage
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1", FirstName: "Old", LastName: "Name"}

	user, err := svc.UpdateProfile(context.Background(), "user-1", "New", "Name")
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.FirstName != "New" {
		t.Errorf("first name = %q, want New", user.FirstName)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.UpdateProfile(context.Background(), "missing", "A", "B"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetProfileImageStoresAndLinks(t *testing.T) {
	svc, users, storage := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1"}

	user, err := svc.SetProfileImage(context.Background(), "user-1", "image/png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("SetProfileImage returned error: %v", err)
	}

	if user.ProfileImageURL == nil {
		t.Fatal("profile image url not set")
	}
	if !strings.HasPrefix(*user.ProfileImageURL, "/static/profile-images/") {
		t.Errorf("unexpected url %q", *user.ProfileImageURL)
	}
	if !strings.HasSuffix(*user.ProfileImageURL, ".png") {
		t.Errorf("expected .png extension, got %q", *user.ProfileImageURL)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("expected 1 stored object, got %d", len(storage.objects))
	}

	stored, _ := users.GetByID(context.Background(), "user-1")
	if stored.ProfileImageURL == nil || *stored.ProfileImageURL != *user.ProfileImageURL {
		t.Error("repository row not updated with image url")
	}
}

func TestSetProfileImageReplacesOldBlob(t *testing.T) {
	svc, users, storage := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1"}

	if _, err := svc.SetProfileImage(context.Background(), "user-1", "image/png", strings.NewReader("one"), 3); err != nil {
		t.Fatalf("first SetProfileImage returned error: %v", err)
	}
	if _, err := svc.SetProfileImage(context.Background(), "user-1", "image/jpeg", strings.NewReader("two"), 3); err != nil {
		t.Fatalf("second SetProfileImage returned error: %v", err)
	}

	if len(storage.objects) != 1 {
		t.Fatalf("old blob should be removed, have %d objects", len(storage.objects))
	}
	if len(storage.removed) != 1 {
		t.Fatalf("expected 1 removal, got %d", len(storage.removed))
	}
}

func TestSetProfileImageRejectsUnknownType(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1"}

	_, err := svc.SetProfileImage(context.Background(), "user-1", "application/pdf", strings.NewReader("x"), 1)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// failingImageUserRepo makes the image-url update fail after the blob is
// already stored, to exercise the rollback path.
type failingImageUserRepo struct {
	*userRepoStub
}

func (m *failingImageUserRepo) UpdateProfileImage(context.Context, string, *string) error {
	return errors.New("write timeout")
}

func TestSetProfileImageRollsBackBlobOnUpdateFailure(t *testing.T) {
	users := newUserRepoStub()
	users.users["user-1"] = domain.User{ID: "user-1"}
	storage := newObjectStorageStub()
	svc := NewUserService(&failingImageUserRepo{users}, storage, nil, zap.NewNop())

	if _, err := svc.SetProfileImage(context.Background(), "user-1", "image/png", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error from failing update")
	}
	if len(storage.objects) != 0 {
		t.Fatal("orphaned blob should have been removed")
	}
}

func TestRemoveProfileImage(t *testing.T) {
	svc, users, storage := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1"}

	if _, err := svc.SetProfileImage(context.Background(), "user-1", "image/webp", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("SetProfileImage returned error: %v", err)
	}
	if err := svc.RemoveProfileImage(context.Background(), "user-1"); err != nil {
		t.Fatalf("RemoveProfileImage returned error: %v", err)
	}

	stored, _ := users.GetByID(context.Background(), "user-1")
	if stored.ProfileImageURL != nil {
		t.Error("image url should be cleared")
	}
	if len(storage.objects) != 0 {
		t.Error("blob should be deleted")
	}
}

func TestDeleteUser(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users["user-1"] = domain.User{ID: "user-1"}

	if err := svc.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
