package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akozyrev/folio/internal/handlers/authctx"
	"github.com/akozyrev/folio/internal/handlers/render"
	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
)

type authService interface {
	Authenticate(ctx context.Context, access string) (tokenmanager.Identity, error)
}

// AuthMiddleware reads the bearer access token and attaches the verified
// identity to the request context. Missing, malformed and invalid tokens
// all answer with the same 401
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := as.Authenticate(r.Context(), token)
			if err != nil {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := authctx.New(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated callers whose role does not match.
// Must be mounted after AuthMiddleware: identity comes from the context
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authctx.FromContext(r.Context())
			if !ok {
				// Identity missing means the auth middleware never ran
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if identity.Role != role {
				render.ServiceError(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
