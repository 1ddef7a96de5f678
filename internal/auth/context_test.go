package auth

import (
	"context"
	"errors"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	ctx := ContextWithUser(context.Background(), "user-7", RoleAdmin)

	id, ok := UserIDFromContext(ctx)
	if !ok || id != "user-7" {
		t.Fatalf("unexpected user id: %q, ok=%v", id, ok)
	}
	role, ok := RoleFromContext(ctx)
	if !ok || role != RoleAdmin {
		t.Fatalf("unexpected role: %q, ok=%v", role, ok)
	}
	if !HasRole(ctx, RoleAdmin) {
		t.Fatal("expected admin role")
	}
	if HasRole(ctx, RoleCommon) {
		t.Fatal("unexpected comum role")
	}
}

func TestContextWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	if _, ok := UserIDFromContext(ctx); ok {
		t.Fatal("expected no user id")
	}
	if _, ok := RoleFromContext(ctx); ok {
		t.Fatal("expected no role")
	}
}

func TestParseRole(t *testing.T) {
	if role, err := ParseRole(" Admin "); err != nil || role != RoleAdmin {
		t.Fatalf("ParseRole admin: %v %v", role, err)
	}
	if role, err := ParseRole("comum"); err != nil || role != RoleCommon {
		t.Fatalf("ParseRole comum: %v %v", role, err)
	}
	if _, err := ParseRole("adm"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
