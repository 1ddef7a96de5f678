package residence

import "errors"

var (
	ErrNotFound     = errors.New("residence: not found")
	ErrConflict     = errors.New("residence: already exists")
	ErrInvalidInput = errors.New("residence: invalid input")
	ErrUnauthorized = errors.New("residence: unauthorized")
	ErrWeakPassword = errors.New("residence: password does not meet policy")
)
