package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"twtr.dev/backend/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/",
	"/login",
	"/renew",
	"/healthz",
	"/readyz",
	"/metrics",
}

// withAuth gates every data operation behind access token verification.
// Verification is a pure decode; no store round trip happens here.
func (a *API) withAuth(next http.Handler) http.Handler {
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
			respondUnauthorized(w, r)
			return
		}
		subject, err := a.auth.Verify(token)
		if err != nil {
			// Always ErrReauthRequired here; the authority hides
			// signature-vs-expiry detail on purpose.
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithSubject(r.Context(), subject)))
	})
}

// respondUnauthorized is the single unauthorized shape every auth
// failure maps to.
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, r, http.StatusUnauthorized, "unauthorized")
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
