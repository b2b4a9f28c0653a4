package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/testutil"
)

func recordedToken(t *testing.T, tx pgx.Tx, tokenHash string) models.RefreshToken {
	t.Helper()

	users := UserRepo{DB: tx}
	user, err := users.CreateUser(t.Context(), uuid.NewString()+"@example.com", "Owner", models.RoleAdmin, "bcrypt-hash")
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	token := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}

	repo := RefreshTokenRepo{DB: tx}
	require.NoError(t, repo.Record(t.Context(), token))
	return token
}

func Test_RefreshTokenRepo(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("record and find active", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			token := recordedToken(t, tx, "hash-1")

			found, err := repo.FindActive(t.Context(), "hash-1")
			require.NoError(t, err)
			assert.Equal(t, token.ID, found.ID)
			assert.Equal(t, token.UserID, found.UserID)
			assert.False(t, found.Revoked)
			assert.True(t, token.ExpiresAt.Equal(found.ExpiresAt), "expiry must survive the roundtrip")
		})
	})

	t.Run("find active ignores expiry", func(t *testing.T) {
		// The ledger answers "was it revoked", the signed claim owns expiry
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}

			token := recordedToken(t, tx, "hash-expired")
			_, err := tx.Exec(t.Context(), "UPDATE refresh_tokens SET expires_at = now() - interval '1 day' WHERE id = $1", token.ID)
			require.NoError(t, err)

			_, err = repo.FindActive(t.Context(), "hash-expired")
			assert.NoError(t, err)
		})
	})

	t.Run("duplicate hash rejected", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			token := recordedToken(t, tx, "hash-dup")

			token.ID = uuid.New()
			assert.Error(t, repo.Record(t.Context(), token))
		})
	})

	t.Run("unknown hash", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}

			_, err := repo.FindActive(t.Context(), "never-recorded")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("revoke is single use", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			recordedToken(t, tx, "hash-revoke")

			require.NoError(t, repo.Revoke(t.Context(), "hash-revoke"))

			_, err := repo.FindActive(t.Context(), "hash-revoke")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "revoked entry must not come back as active")

			err = repo.Revoke(t.Context(), "hash-revoke")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenRevoked, "second revoke must see the flag already set")
		})
	})

	t.Run("revoke unknown hash", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}

			err := repo.Revoke(t.Context(), "never-recorded")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("revoke if present", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{DB: tx}
			recordedToken(t, tx, "hash-logout")

			require.NoError(t, repo.RevokeIfPresent(t.Context(), "hash-logout"))

			_, err := repo.FindActive(t.Context(), "hash-logout")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)

			assert.NoError(t, repo.RevokeIfPresent(t.Context(), "hash-logout"), "repeat must stay silent")
			assert.NoError(t, repo.RevokeIfPresent(t.Context(), "never-recorded"), "unknown hash must stay silent")
		})
	})
}
