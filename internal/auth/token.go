package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 15 * time.Minute

// Claims is the identity payload carried inside a signed token.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. Tokens are
// stateless: once issued they remain valid until natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption configures TokenService behavior.
type TokenOption func(*TokenService)

// WithIssuer overrides the issuer claim embedded into tokens.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		if v := strings.TrimSpace(issuer); v != "" {
			s.issuer = v
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) TokenOption {
	return func(s *TokenService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewTokenService constructs a TokenService with the given signing
// secret and token lifetime. The secret is read-only for the lifetime
// of the process and must never surface in logs or responses.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	svc := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "casapio",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Issue signs an HS256 token for the given subject and role and returns
// it together with its expiration time.
func (s *TokenService) Issue(subjectID string, role Role) (string, time.Time, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", time.Time{}, errors.New("auth: subject is required")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates the signature and time bounds of a token and returns
// its claims. Failures are reported as ErrTokenMalformed,
// ErrTokenExpired or ErrSignatureInvalid.
func (s *TokenService) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenMalformed
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrSignatureInvalid
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrSignatureInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" || !claims.Role.Valid() {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }
