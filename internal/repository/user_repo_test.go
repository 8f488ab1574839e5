package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/veritaslab/veritas/internal/domain"
)

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "alice@example.com", PasswordHash: "hash", Name: "Alice"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected auto-assigned ID")
	}

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetByEmail returned %+v, want ID %d", byEmail, user.ID)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("GetByID email = %q", byID.Email)
	}
}

func TestUserRepositoryGetByEmailAbsent(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for unknown email, got %+v", user)
	}
}

func TestUserRepositoryGetByIDAbsent(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	_, err := repo.GetByID(context.Background(), 12345)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	err := repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "h2"})
	var perr *domain.PersistenceError
	if !errors.As(err, &perr) {
		t.Errorf("expected PersistenceError for duplicate email, got %v", err)
	}
}
