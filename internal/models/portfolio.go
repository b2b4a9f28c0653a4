package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PortfolioStats are the headline numbers shown on the public site.
// Uptime is a percentage, e.g. 99.99
type PortfolioStats struct {
	Uptime     decimal.Decimal `json:"uptime"`
	Commits    int             `json:"commits"`
	Visitors   int             `json:"visitors"`
	Lighthouse int             `json:"lighthouse"`
}

// Portfolio is the single profile document backing the public site
type Portfolio struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Bio       string         `json:"bio"`
	Location  string         `json:"location"`
	Email     string         `json:"email"`
	Stats     PortfolioStats `json:"stats"`
}
