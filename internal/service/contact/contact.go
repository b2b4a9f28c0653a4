package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/repository"
)

type ContactService struct {
	repo repository.ContactRepo
}

func NewService(repo repository.ContactRepo) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Send(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	if m.Priority == "" {
		m.Priority = models.PriorityNormal
	}
	return s.repo.Create(ctx, m)
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) (models.ContactMessage, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *ContactService) MarkAllRead(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
