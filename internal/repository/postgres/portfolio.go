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

// PortfolioRepo manages the single profile document backing the site
type PortfolioRepo struct {
	DB DBTX
}

const getPortfolio = `-- name: GetPortfolio
SELECT id, created_at, updated_at, name, role, bio, location, email, stats
FROM portfolio
LIMIT 1
`

func (r *PortfolioRepo) Get(ctx context.Context) (models.Portfolio, error) {
	rows, _ := r.DB.Query(ctx, getPortfolio)
	portfolio, err := pgx.CollectOneRow(rows, rowToPortfolio)

	switch {
	case err == nil:
		return portfolio, nil
	case errors.Is(err, pgx.ErrNoRows):
		return portfolio, apperrors.ErrPortfolioNotFound
	default:
		return portfolio, fmt.Errorf("db error: %w", err)
	}
}

const upsertPortfolio = `-- name: UpsertPortfolio replace the single document
INSERT INTO portfolio (id, name, role, bio, location, email, stats)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET updated_at = now(), name = $2, role = $3, bio = $4, location = $5, email = $6, stats = $7
RETURNING id, created_at, updated_at, name, role, bio, location, email, stats
`

func (r *PortfolioRepo) Upsert(ctx context.Context, p models.Portfolio) (models.Portfolio, error) {
	id := p.ID
	if id == uuid.Nil {
		// Keep the existing row id when a document already exists
		existing, err := r.Get(ctx)
		switch {
		case err == nil:
			id = existing.ID
		case errors.Is(err, apperrors.ErrPortfolioNotFound):
			id = uuid.New()
		default:
			return p, err
		}
	}

	rows, _ := r.DB.Query(ctx, upsertPortfolio, id, p.Name, p.Role, p.Bio, p.Location, p.Email, p.Stats)
	portfolio, err := pgx.CollectOneRow(rows, rowToPortfolio)
	if err != nil {
		return portfolio, fmt.Errorf("db error: %w", err)
	}
	return portfolio, nil
}

func rowToPortfolio(row pgx.CollectableRow) (models.Portfolio, error) {
	var p models.Portfolio
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Name, &p.Role, &p.Bio, &p.Location, &p.Email, &p.Stats)
	return p, err
}
