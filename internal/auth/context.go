package auth

import (
	"context"
	"strings"
)

type userIDContextKey struct{}
type roleContextKey struct{}

// ContextWithUser stores the authenticated identity in the context.
// The auth gate is the only writer; handlers must never accept identity
// from request bodies or query parameters.
func ContextWithUser(ctx context.Context, userID string, role Role) context.Context {
	ctx = context.WithValue(ctx, userIDContextKey{}, strings.TrimSpace(userID))
	if role.Valid() {
		ctx = context.WithValue(ctx, roleContextKey{}, role)
	}
	return ctx
}

// UserIDFromContext extracts the authenticated user ID from the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(userIDContextKey{}).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// RoleFromContext extracts the authenticated role from the context.
func RoleFromContext(ctx context.Context) (Role, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(roleContextKey{}).(Role)
	if !ok || !v.Valid() {
		return "", false
	}
	return v, true
}

// HasRole reports whether the context carries the given role.
func HasRole(ctx context.Context, role Role) bool {
	got, ok := RoleFromContext(ctx)
	return ok && got == role
}
