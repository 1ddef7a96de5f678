package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"casapio.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/v1/auth/login",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
	"/",
}

func (a *API) withAuth(next http.Handler) http.Handler {
	if a == nil || a.tokens == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="casapio"`)
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="casapio", error="invalid_token"`)
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				writeError(w, r, http.StatusUnauthorized, "token expired")
			default:
				writeError(w, r, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		ctx := auth.ContextWithUser(r.Context(), claims.Subject, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a handler on the authenticated role. Missing
// identity is 401, wrong role is 403; both carry WWW-Authenticate.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.UserIDFromContext(r.Context()); !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="casapio"`)
				writeError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			if !auth.HasRole(r.Context(), role) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="casapio", error="insufficient_scope"`)
				writeError(w, r, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
