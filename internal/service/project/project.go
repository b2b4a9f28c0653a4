package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/repository"
)

type ProjectService struct {
	repo repository.ProjectRepo
}

func NewService(repo repository.ProjectRepo) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (models.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.Status == "" {
		p.Status = models.ProjectStatusProduction
	}
	return s.repo.Create(ctx, p)
}

func (s *ProjectService) Update(ctx context.Context, p models.Project) (models.Project, error) {
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProjectService) Like(ctx context.Context, id uuid.UUID) (models.Project, error) {
	return s.repo.Like(ctx, id)
}

func (s *ProjectService) AddComment(ctx context.Context, id uuid.UUID, author string, text string) (models.Project, error) {
	if author == "" || text == "" {
		return models.Project{}, errors.New("author and text required")
	}

	return s.repo.AddComment(ctx, id, models.ProjectComment{
		Author:    author,
		Text:      text,
		Timestamp: time.Now().Truncate(time.Second),
	})
}
