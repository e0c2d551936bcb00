package jwt

import (
	"errors"
	"testing"
	"time"

	"slotboard/backend/config"
)

func testManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-0123456789abcdef",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 168 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.GenerateAccessToken("user-001")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a JWT ID")
	}
}

func TestRefreshTokenRememberMe(t *testing.T) {
	m := testManager()

	token, err := m.GenerateRefreshToken("user-001", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q", claims.TokenType)
	}
	if !claims.RememberMe {
		t.Error("expected RememberMe claim")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 167*time.Hour {
		t.Errorf("remember-me TTL too short: %v", remaining)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := testManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-0123456789abcdef",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := m.GenerateAccessToken("user-001")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-0123456789abcdef",
		AccessTokenTTL: -time.Minute,
	})

	token, err := m.GenerateAccessToken("user-001")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	m := testManager()
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
