package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", 30*time.Minute, WithIssuer("test-issuer"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, expiresAt, err := svc.Issue("user-42", RoleCommon)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiration, got %v", expiresAt)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != RoleCommon {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Issuer != "test-issuer" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	current := time.Now().UTC()
	svc, err := NewTokenService("test-secret", time.Minute, WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _, err := svc.Issue("user-7", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, _, err := svc.Issue("user-7", RoleCommon)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one byte of the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuing, err := NewTokenService("secret-one", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	verifying, err := NewTokenService("secret-two", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _, err := issuing.Issue("user-7", RoleCommon)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifying.Verify(token); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	for _, raw := range []string{"", "   ", "not-a-token", "a.b"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestIssueRejectsInvalidInput(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if _, _, err := svc.Issue("", RoleCommon); err == nil {
		t.Fatal("expected error for empty subject")
	}
	if _, _, err := svc.Issue("user-1", Role("adm")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
