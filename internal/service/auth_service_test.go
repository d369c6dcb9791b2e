package service

import (
	"errors"
	"testing"
	"time"

	"expertline/internal/config"
	"expertline/internal/repository"
	"expertline/internal/util"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestLoginStampsLastLogin(t *testing.T) {
	s := newTestAuthService(t)

	if _, err := s.Register(RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := s.Login(LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.LastLogin.IsZero() {
		t.Error("last login should be stamped on login")
	}

	stored, err := s.UserRepo.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.LastLogin.IsZero() {
		t.Error("last login should be persisted")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestAuthService(t)

	if _, err := s.Register(RegisterRequest{Email: "bob@example.com", Username: "bob1", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := s.Login(LoginRequest{Email: "bob@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestAuthService(t)

	req := RegisterRequest{Email: "carol@example.com", Username: "carol", Password: "password123"}
	if _, err := s.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}

	req.Username = "carol2"
	if _, err := s.Register(req); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}
