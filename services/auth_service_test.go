package services

import (
	"errors"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()

	hash, err := lib.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
			AdminEmail:        "admin@ravvio.local",
			AdminPasswordHash: hash,
		},
	}
	return NewAuthService(cfg, gecho.NewDefaultLogger(), setupTestDB(t))
}

func TestLoginIssuesToken(t *testing.T) {
	as := newTestAuthService(t, "s3cret")

	token, err := as.Login(&structs.LoginRequest{Email: "admin@ravvio.local", Password: "s3cret"})
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}

	claims, err := as.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate issued token: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("expected admin role, got %q", claims.Role)
	}
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	as := newTestAuthService(t, "s3cret")

	cases := []structs.LoginRequest{
		{Email: "admin@ravvio.local", Password: "wrong"},
		{Email: "someone@else.com", Password: "s3cret"},
	}
	for _, req := range cases {
		if _, err := as.Login(&req); !errors.Is(err, lib.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials for %q, got %v", req.Email, err)
		}
	}
}

func TestLoginRequiresFields(t *testing.T) {
	as := newTestAuthService(t, "s3cret")

	if _, err := as.Login(&structs.LoginRequest{}); !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginFailsWithoutConfiguredHash(t *testing.T) {
	as := newTestAuthService(t, "s3cret")
	as.cfg.Auth.AdminPasswordHash = ""

	if _, err := as.Login(&structs.LoginRequest{Email: "admin@ravvio.local", Password: "s3cret"}); !errors.Is(err, lib.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
