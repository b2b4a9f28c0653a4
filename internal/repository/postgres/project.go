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

type ProjectRepo struct {
	DB DBTX
}

const createProject = `-- name: CreateProject
INSERT INTO projects (id, title, description, tags, link, github, image, featured, version, status, metrics)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
`

func (r *ProjectRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, createProject,
		uuid.New(), p.Title, p.Description, p.Tags, p.Link, p.Github, p.Image, p.Featured, p.Version, p.Status, p.Metrics)
	project, err := pgx.CollectOneRow(rows, rowToProject)
	if err != nil {
		return project, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

const getProject = `-- name: GetProject
SELECT id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
FROM projects
WHERE id = $1
`

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, getProject, id)
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}
}

const listProjects = `-- name: ListProjects newest first
SELECT id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
FROM projects
ORDER BY created_at DESC
`

func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, _ := r.DB.Query(ctx, listProjects)
	projects, err := pgx.CollectRows(rows, rowToProject)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}

const updateProject = `-- name: UpdateProject
UPDATE projects
SET updated_at = now(), title = $2, description = $3, tags = $4, link = $5, github = $6,
    image = $7, featured = $8, version = $9, status = $10, metrics = $11
WHERE id = $1
RETURNING id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
`

func (r *ProjectRepo) Update(ctx context.Context, p models.Project) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, updateProject,
		p.ID, p.Title, p.Description, p.Tags, p.Link, p.Github, p.Image, p.Featured, p.Version, p.Status, p.Metrics)
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}
}

const deleteProject = `-- name: DeleteProject
DELETE FROM projects
WHERE id = $1
RETURNING id
`

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	rows, _ := r.DB.Query(ctx, deleteProject, id)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrProjectNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

const likeProject = `-- name: LikeProject atomic increment
UPDATE projects
SET likes = likes + 1
WHERE id = $1
RETURNING id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
`

func (r *ProjectRepo) Like(ctx context.Context, id uuid.UUID) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, likeProject, id)
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}
}

const addProjectComment = `-- name: AddComment append to jsonb array
UPDATE projects
SET comments = comments || $2::jsonb
WHERE id = $1
RETURNING id, created_at, updated_at, title, description, tags, link, github, image, featured, version, status, metrics, likes, comments
`

func (r *ProjectRepo) AddComment(ctx context.Context, id uuid.UUID, c models.ProjectComment) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, addProjectComment, id, []models.ProjectComment{c})
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}
}

func rowToProject(row pgx.CollectableRow) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.Description, &p.Tags, &p.Link, &p.Github,
		&p.Image, &p.Featured, &p.Version, &p.Status, &p.Metrics, &p.Likes, &p.Comments,
	)
	return p, err
}
