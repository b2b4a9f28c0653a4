package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/handlers/render"
	"github.com/akozyrev/folio/internal/logger"
	"github.com/akozyrev/folio/internal/models"
)

type portfolioService interface {
	Get(ctx context.Context) (models.Portfolio, error)
	Update(ctx context.Context, p models.Portfolio) (models.Portfolio, error)
}

type PortfolioHandler struct {
	portfolio portfolioService
	logger    logger.Logger
}

func NewPortfolio(portfolio portfolioService, l logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, logger: l}
}

func (h *PortfolioHandler) get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.portfolio.Get(r.Context())
	if err != nil {
		h.logger.Error("get portfolio failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
		return
	}

	render.JSON(w, doc)
}

func (h *PortfolioHandler) update(w http.ResponseWriter, r *http.Request) {
	type StatsRequest struct {
		Uptime     decimal.Decimal `json:"uptime"`
		Commits    int             `json:"commits" validate:"min=0"`
		Visitors   int             `json:"visitors" validate:"min=0"`
		Lighthouse int             `json:"lighthouse" validate:"min=0,max=100"`
	}
	type UpdateRequest struct {
		Name     string       `json:"name" validate:"required"`
		Role     string       `json:"role" validate:"required"`
		Bio      string       `json:"bio" validate:"required"`
		Location string       `json:"location" validate:"required"`
		Email    string       `json:"email" validate:"required,email"`
		Stats    StatsRequest `json:"stats"`
	}

	data, err := render.BindAndValidate[UpdateRequest](w, r)
	if err != nil {
		return
	}

	doc, err := h.portfolio.Update(r.Context(), models.Portfolio{
		Name:     data.Name,
		Role:     data.Role,
		Bio:      data.Bio,
		Location: data.Location,
		Email:    data.Email,
		Stats: models.PortfolioStats{
			Uptime:     data.Stats.Uptime,
			Commits:    data.Stats.Commits,
			Visitors:   data.Stats.Visitors,
			Lighthouse: data.Stats.Lighthouse,
		},
	})
	if err != nil {
		h.logger.Error("update portfolio failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
		return
	}

	render.JSON(w, doc)
}
