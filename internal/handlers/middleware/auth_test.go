package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/handlers/authctx"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
)

// fakeAuthService accepts exactly one token value and maps it to one identity
type fakeAuthService struct {
	token    string
	identity tokenmanager.Identity
}

func (f fakeAuthService) Authenticate(_ context.Context, access string) (tokenmanager.Identity, error) {
	if access != f.token {
		return tokenmanager.Identity{}, apperrors.ErrInvalidAccessToken
	}
	return f.identity, nil
}

func identityEcho(t *testing.T, captured *tokenmanager.Identity) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authctx.FromContext(r.Context())
		require.True(t, ok, "identity must be in the context behind the middleware")
		*captured = identity
		w.WriteHeader(http.StatusOK)
	})
}

func Test_AuthMiddleware(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	service := fakeAuthService{
		token:    "good-token",
		identity: tokenmanager.Identity{UserID: adminID, Role: models.RoleAdmin},
	}

	t.Run("valid bearer token", func(t *testing.T) {
		var captured tokenmanager.Identity
		handler := AuthMiddleware(service)(identityEcho(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, adminID, captured.UserID)
		assert.Equal(t, models.RoleAdmin, captured.Role)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		var captured tokenmanager.Identity
		handler := AuthMiddleware(service)(identityEcho(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejections", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler behind the middleware must not run")
		})
		handler := AuthMiddleware(service)(next)

		cases := []struct {
			name   string
			header string
		}{
			{"no header", ""},
			{"wrong scheme", "Basic good-token"},
			{"token missing", "Bearer"},
			{"empty token", "Bearer "},
			{"invalid token", "Bearer tampered-token"},
		}

		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.JSONEq(t, `{"error": "service_error", "message": "Unauthorized"}`, rec.Body.String(),
					"every failure mode must produce the same answer")
			})
		}
	})
}

func Test_RequireRole(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withIdentity := func(req *http.Request, role string) *http.Request {
		identity := tokenmanager.Identity{UserID: uuid.New(), Role: role}
		return req.WithContext(authctx.New(req.Context(), identity))
	}

	t.Run("matching role passes", func(t *testing.T) {
		handler := RequireRole(models.RoleAdmin)(next)

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), models.RoleAdmin)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		handler := RequireRole(models.RoleAdmin)(next)

		req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), models.RoleUser)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error": "service_error", "message": "Forbidden"}`, rec.Body.String())
	})

	t.Run("no identity in context", func(t *testing.T) {
		handler := RequireRole(models.RoleAdmin)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
