package auth

import "errors"

var (
	// ErrTokenMalformed indicates the token structure could not be parsed.
	ErrTokenMalformed = errors.New("auth: token malformed")
	// ErrTokenExpired indicates the token is past its expiration time.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrSignatureInvalid indicates the signature does not match the server secret.
	ErrSignatureInvalid = errors.New("auth: token signature invalid")

	// ErrInvalidRole indicates a role tag outside the closed set.
	ErrInvalidRole = errors.New("auth: invalid role")
)
