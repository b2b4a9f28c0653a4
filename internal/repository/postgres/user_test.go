package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create and get back", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			created, err := repo.CreateUser(t.Context(), "owner@example.com", "Owner", models.RoleAdmin, "bcrypt-hash")
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.False(t, created.CreatedAt.IsZero())
			assert.Equal(t, "owner@example.com", created.Email)
			assert.Equal(t, "Owner", created.Name)
			assert.Equal(t, models.RoleAdmin, created.Role)
			assert.Equal(t, "bcrypt-hash", created.HashedPassword)

			byID, err := repo.GetUserByID(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, byID)

			byEmail, err := repo.GetUserByEmail(t.Context(), "owner@example.com")
			require.NoError(t, err)
			assert.Equal(t, created, byEmail)
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.CreateUser(t.Context(), "owner@example.com", "Owner", models.RoleAdmin, "bcrypt-hash")
			require.NoError(t, err)

			_, err = repo.CreateUser(t.Context(), "owner@example.com", "Other", models.RoleUser, "other-hash")
			assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		})
	})

	t.Run("user not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.GetUserByID(t.Context(), uuid.New())
			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

			_, err = repo.GetUserByEmail(t.Context(), "nobody@example.com")
			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
