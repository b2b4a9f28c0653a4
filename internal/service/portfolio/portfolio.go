package portfolio

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/repository"
)

type PortfolioService struct {
	repo repository.PortfolioRepo
}

func NewService(repo repository.PortfolioRepo) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// Get returns the profile document, creating a default one on first read
// so the public site always has something to render
func (s *PortfolioService) Get(ctx context.Context) (models.Portfolio, error) {
	doc, err := s.repo.Get(ctx)

	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, apperrors.ErrPortfolioNotFound):
		return s.repo.Upsert(ctx, defaultPortfolio())
	default:
		return doc, err
	}
}

func (s *PortfolioService) Update(ctx context.Context, p models.Portfolio) (models.Portfolio, error) {
	return s.repo.Upsert(ctx, p)
}

func defaultPortfolio() models.Portfolio {
	return models.Portfolio{
		Name:     "VORTEX",
		Role:     "Lead Software Architect",
		Bio:      "Engineering high-performance distributed systems and design-driven interfaces.",
		Location: "San Francisco, CA",
		Email:    "engineering@vortex.io",
		Stats: models.PortfolioStats{
			Uptime:     decimal.RequireFromString("99.99"),
			Commits:    2481,
			Visitors:   12402,
			Lighthouse: 100,
		},
	}
}
