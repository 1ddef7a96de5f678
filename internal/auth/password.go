package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored hash.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsPasswordValid checks a candidate password against the account
// password rules: at least 8 characters, at least one uppercase letter,
// one lowercase letter and one digit, and the candidate must not
// contain any part of the owner's name or the birthdate.
//
// Empty ownerName or birthdate trivially pass the containment rules;
// callers are expected to supply both when leakage protection matters.
func IsPasswordValid(candidate, ownerName, birthdate string) bool {
	if len([]rune(candidate)) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false
	}
	lowered := strings.ToLower(candidate)
	for _, part := range strings.Fields(strings.ToLower(ownerName)) {
		// initials and connectives ("de", "da") are too short to matter
		if len([]rune(part)) < 3 {
			continue
		}
		if strings.Contains(lowered, part) {
			return false
		}
	}
	if bd := strings.TrimSpace(birthdate); bd != "" && strings.Contains(candidate, bd) {
		return false
	}
	return true
}
