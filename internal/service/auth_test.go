package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veritaslab/veritas/internal/domain"
)

// stubUserStore keeps accounts in memory keyed by email.
type stubUserStore struct {
	users  map[string]*domain.User
	nextID uint
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*domain.User)}
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error {
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users[email], nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestAuthService(store UserStore) *AuthService {
	return NewAuthService(store, &AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
}

func TestAuthRegisterLoginVerify(t *testing.T) {
	svc := newTestAuthService(newStubUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "correct-horse", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user ID")
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	token, loggedIn, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("login returned user %d, want %d", loggedIn.ID, user.ID)
	}

	ownerID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if ownerID != user.ID {
		t.Errorf("token carries owner %d, want %d", ownerID, user.ID)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "password1", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "dup@example.com", "password2", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newStubUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "secret-pass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong-pass")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret-pass")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestAuthVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newStubUserStore())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestAuthVerifyTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthService(newStubUserStore(), &AuthConfig{Secret: "other-secret", TokenTTL: time.Hour})
	ctx := context.Background()

	if _, err := issuer.Register(ctx, "eve@example.com", "password", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := issuer.Login(ctx, "eve@example.com", "password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	verifier := newTestAuthService(newStubUserStore())
	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign signature, got %v", err)
	}
}

func TestAuthVerifyTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(newStubUserStore())

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}
