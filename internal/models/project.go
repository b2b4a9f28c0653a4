package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	ProjectStatusProduction = "production"
	ProjectStatusBeta       = "beta"
	ProjectStatusArchived   = "archived"
)

type ProjectMetrics struct {
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Coverage string `json:"coverage"`
}

type ProjectComment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Project struct {
	ID          uuid.UUID        `json:"id"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Link        string           `json:"link"`
	Github      string           `json:"github,omitempty"`
	Image       string           `json:"image"`
	Featured    bool             `json:"featured"`
	Version     string           `json:"version,omitempty"`
	Status      string           `json:"status"`
	Metrics     *ProjectMetrics  `json:"metrics,omitempty"`
	Likes       int              `json:"likes"`
	Comments    []ProjectComment `json:"comments"`
}
