package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
)

type RefreshTokenRepo struct {
	DB DBTX
}

const recordToken = `-- name: Record refresh token
INSERT INTO refresh_tokens (id, user_id, token_hash, created_at, expires_at, revoked)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

func (r *RefreshTokenRepo) Record(ctx context.Context, token models.RefreshToken) error {
	rows, _ := r.DB.Query(ctx, recordToken, token.ID, token.UserID, token.TokenHash, token.CreatedAt, token.ExpiresAt, token.Revoked)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const findActiveToken = `-- name: FindActive by token hash
SELECT id, user_id, created_at, expires_at, revoked
FROM refresh_tokens
WHERE token_hash = $1 AND NOT revoked
`

// Find a non-revoked ledger entry
// Expiry is intentionally not filtered: the signed claim owns expiry
func (r *RefreshTokenRepo) FindActive(ctx context.Context, tokenHash string) (models.RefreshToken, error) {
	rows, _ := r.DB.Query(ctx, findActiveToken, tokenHash)
	token, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (models.RefreshToken, error) {
		var t = models.RefreshToken{TokenHash: tokenHash}
		err := row.Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.ExpiresAt, &t.Revoked)
		return t, err
	})

	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, pgx.ErrNoRows):
		return token, fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	default:
		return token, fmt.Errorf("db error: %w", err)
	}
}

const revokeActiveToken = `-- name: Revoke token if still active
UPDATE refresh_tokens
SET revoked = true
WHERE token_hash = $1 AND NOT revoked
RETURNING id
`

const tokenExists = `-- name: Token hash known at all
SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token_hash = $1)
`

// Revoke the entry only if it is still active.
// The conditional update is what makes rotation single-use under concurrency:
// of two requests racing on one token exactly one hits a non-revoked row
func (r *RefreshTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	rows, _ := r.DB.Query(ctx, revokeActiveToken, tokenHash)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		// Zero rows: either the hash is unknown or someone revoked it first
		var known bool
		if err := r.DB.QueryRow(ctx, tokenExists, tokenHash).Scan(&known); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if known {
			return fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenRevoked)
		}
		return fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

const revokeTokenIfPresent = `-- name: Revoke token, no-op when unknown
UPDATE refresh_tokens
SET revoked = true
WHERE token_hash = $1
`

// Used by logout: revoking an unknown or already revoked hash succeeds
// silently so the endpoint never reveals whether a token existed
func (r *RefreshTokenRepo) RevokeIfPresent(ctx context.Context, tokenHash string) error {
	_, err := r.DB.Exec(ctx, revokeTokenIfPresent, tokenHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
