package service

import (
	"context"
	"errors"
	"testing"

	"fittrack/fitness-tracker/internal/domain"
)

func TestCreateUserWithoutPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	ctx := context.Background()

	// Social-login accounts arrive without a password.
	user, err := svc.CreateUser(ctx, &domain.User{Name: "Sky Chen", Email: "sky@example.com"}, "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("role must default to member, got %q", user.Role)
	}
	if userRepo.users["sky@example.com"].PasswordHash != "" {
		t.Fatal("passwordless account must not store a hash")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &domain.User{Name: "Sky Chen", Email: "sky@example.com"}, ""); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}
	_, err := svc.CreateUser(ctx, &domain.User{Name: "Other Sky", Email: "sky@example.com"}, "")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.UpdateProfile(context.Background(), "ghost@example.com", map[string]interface{}{"name": "Ghost"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetByEmailStripsHash(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &domain.User{Name: "Sky Chen", Email: "sky@example.com"}, "hunter22"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := svc.GetByEmail(ctx, "sky@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatal("lookup must not expose the password hash")
	}
}
