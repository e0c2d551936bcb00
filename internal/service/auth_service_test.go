package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"slotboard/backend/config"
	"slotboard/backend/internal/dto"
	"slotboard/backend/pkg/jwt"
)

func setupAuthService() (AuthService, *testMocks) {
	repo, m := newTestRepository()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-at-least-16",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, zap.NewNop())
	return svc, m
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthService()

	reg := &dto.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct horse"}
	result, err := svc.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if result.User.Email != "sam@example.com" {
		t.Errorf("unexpected user: %+v", result.User)
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login should return the registered user")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, _ := setupAuthService()

	reg := &dto.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("first register should succeed: %v", err)
	}
	if _, err := svc.Register(context.Background(), reg); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupAuthService()

	reg := &dto.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email should also yield ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := setupAuthService()

	reg := &dto.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct horse"}
	registered, err := svc.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh should succeed: %v", err)
	}
	if refreshed.User.ID != registered.User.ID {
		t.Error("refresh should keep the same user")
	}

	// An access token is not a refresh token.
	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: registered.AccessToken}); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"}); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh for garbage, got %v", err)
	}
}
