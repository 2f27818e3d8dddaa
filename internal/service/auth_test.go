package service

import (
	"errors"
	"testing"

	"github.com/checkout-sre/backend/internal/config"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(config.AuthConfig{
		JWTSecret:    "test-secret",
		AccessTTL:    "15m",
		ClientID:     "workflow-engine",
		ClientSecret: "workflow-secret",
	})
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}
	return svc
}

func TestIssueAndParseServiceToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.IssueServiceToken("workflow-engine", "workflow-secret")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	subject, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if subject != "workflow-engine" {
		t.Fatalf("subject = %q, want workflow-engine", subject)
	}
}

func TestIssueServiceTokenBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.IssueServiceToken("workflow-engine", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.IssueServiceToken("intruder", "workflow-secret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other, err := NewAuthService(config.AuthConfig{JWTSecret: "other-secret", AccessTTL: "15m"})
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}

	token, err := svc.IssueServiceToken("workflow-engine", "workflow-secret")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := other.ParseAccessToken(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	if _, err := NewAuthService(config.AuthConfig{AccessTTL: "15m"}); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}
