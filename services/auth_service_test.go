package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"SocialAutoPoster/config"
)

func testAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewAuthService(&config.Config{
		Server: config.Server{
			JWTSecret:         "test-secret",
			AdminPasswordHash: string(hash),
		},
	})
}

func TestLoginSuccess(t *testing.T) {
	auth := testAuthService(t, "hunter2")
	if err := auth.Login("hunter2"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := testAuthService(t, "hunter2")
	if err := auth.Login("hunter3"); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	auth := NewAuthService(&config.Config{Server: config.Server{JWTSecret: "test-secret"}})
	if err := auth.Login("anything"); err == nil {
		t.Error("expected login to be disabled without a password hash")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	auth := testAuthService(t, "hunter2")

	token, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != "admin" || claims.Subject != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	auth := testAuthService(t, "hunter2")
	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	auth := testAuthService(t, "hunter2")
	token, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewAuthService(&config.Config{Server: config.Server{JWTSecret: "different-secret"}})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}
