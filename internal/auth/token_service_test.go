package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/ndkhang/hirestage/config"
	"github.com/ndkhang/hirestage/internal/model"
)

func newTestTokenService(secret string, ttlMinutes int) TokenService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.TokenTTLMinutes = ttlMinutes
	return NewTokenService(cfg)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService("test-secret", 60)

	token, err := svc.Generate(42, model.RoleHR)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != model.RoleHR {
		t.Fatalf("expected role %q, got %q", model.RoleHR, claims.Role)
	}
}

func TestTokenRequiresSecret(t *testing.T) {
	svc := newTestTokenService("", 60)

	if _, err := svc.Generate(1, model.RoleAdmin); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret on generate, got %v", err)
	}
	if _, err := svc.Validate("anything"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret on validate, got %v", err)
	}
}

func TestTokenTamperingDetected(t *testing.T) {
	svc := newTestTokenService("test-secret", 60)

	token, err := svc.Generate(42, model.RoleCandidate)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := svc.Validate(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := newTestTokenService("secret-a", 60)
	verifier := newTestTokenService("secret-b", 60)

	token, err := issuer.Generate(7, model.RolePanel)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid across secrets, got %v", err)
	}
}

func TestTokenExpiryRejected(t *testing.T) {
	svc := newTestTokenService("test-secret", -1)

	token, err := svc.Generate(7, model.RoleCandidate)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}
