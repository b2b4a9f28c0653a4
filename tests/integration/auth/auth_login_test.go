package auth

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/testutil"
	"github.com/akozyrev/folio/tests/integration"
)

const (
	RegisterURL = "/api/auth/register"
	LoginURL    = "/api/auth/login"
)

func postJSON(t *testing.T, url string, data string) (int, string) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(data))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, string(body)
}

func Test_AuthLogin(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("register then login", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			code, body := postJSON(t, srvURL+RegisterURL,
				`{"email": "owner@example.com", "password": "StrongEnoughPassword", "name": "Owner"}`)
			require.Equalf(t, http.StatusCreated, code, "not expected code. Body: %s", body)
			require.Contains(t, body, `"accessToken"`)
			require.Contains(t, body, `"refreshToken"`)
			require.NotContains(t, body, "passwordHash", "hash must not leak over the wire")

			code, body = postJSON(t, srvURL+LoginURL,
				`{"email": "owner@example.com", "password": "StrongEnoughPassword"}`)
			require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)
			require.Contains(t, body, `"accessToken"`)
		})
	})

	t.Run("login failure causes indistinguishable", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, err := s.AuthService.Register(t.Context(), "owner@example.com", "StrongEnoughPassword", "Owner", models.RoleAdmin)
			require.NoError(t, err)

			wrongCode, wrongBody := postJSON(t, srvURL+LoginURL,
				`{"email": "owner@example.com", "password": "WrongPassword1"}`)
			unknownCode, unknownBody := postJSON(t, srvURL+LoginURL,
				`{"email": "nobody@example.com", "password": "StrongEnoughPassword"}`)

			require.Equal(t, http.StatusUnauthorized, wrongCode)
			require.Equal(t, http.StatusUnauthorized, unknownCode)
			require.Equal(t, wrongBody, unknownBody, "wrong password and unknown email must answer identically")
			require.JSONEq(t, `
				{
					"error": "service_error",
					"message": "Invalid credentials"
				}`, wrongBody)
		})
	})
}
