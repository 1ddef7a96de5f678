package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Token issuance and the
// authorization gate share these constants so the tag cannot drift
// between the two call sites.
type Role string

const (
	// RoleAdmin grants access to the administrative routes.
	RoleAdmin Role = "admin"
	// RoleCommon is a regular resident account.
	RoleCommon Role = "comum"
)

// ParseRole normalizes a raw tag into a canonical Role.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCommon:
		return RoleCommon, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

// Valid reports whether the role is one of the canonical values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCommon
}

func (r Role) String() string { return string(r) }
