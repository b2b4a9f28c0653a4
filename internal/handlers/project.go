package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/handlers/render"
	"github.com/akozyrev/folio/internal/logger"
	"github.com/akozyrev/folio/internal/models"
)

type projectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (models.Project, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, p models.Project) (models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, id uuid.UUID) (models.Project, error)
	AddComment(ctx context.Context, id uuid.UUID, author string, text string) (models.Project, error)
}

type ProjectHandler struct {
	projects projectService
	logger   logger.Logger
}

func NewProject(projects projectService, l logger.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: l}
}

// ProjectRequest is the write payload for create and update
type ProjectRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description" validate:"required"`
	Tags        []string               `json:"tags"`
	Link        string                 `json:"link" validate:"required"`
	Github      string                 `json:"github"`
	Image       string                 `json:"image" validate:"required"`
	Featured    bool                   `json:"featured"`
	Version     string                 `json:"version"`
	Status      string                 `json:"status" validate:"omitempty,oneof=production beta archived"`
	Metrics     *models.ProjectMetrics `json:"metrics"`
}

func (req ProjectRequest) model() models.Project {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.Project{
		Title:       req.Title,
		Description: req.Description,
		Tags:        tags,
		Link:        req.Link,
		Github:      req.Github,
		Image:       req.Image,
		Featured:    req.Featured,
		Version:     req.Version,
		Status:      req.Status,
		Metrics:     req.Metrics,
	}
}

func (h *ProjectHandler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error("list projects failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
		return
	}

	render.JSON(w, projects)
}

func (h *ProjectHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	render.JSON(w, project)
}

func (h *ProjectHandler) create(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[ProjectRequest](w, r)
	if err != nil {
		return
	}

	project, err := h.projects.Create(r.Context(), data.model())
	if err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	render.JSONWithStatus(w, project, http.StatusCreated)
}

func (h *ProjectHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[ProjectRequest](w, r)
	if err != nil {
		return
	}

	p := data.model()
	p.ID = id

	project, err := h.projects.Update(r.Context(), p)
	if err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	render.JSON(w, project)
}

func (h *ProjectHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	project, err := h.projects.Like(r.Context(), id)
	if err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	render.JSON(w, project)
}

func (h *ProjectHandler) addComment(w http.ResponseWriter, r *http.Request) {
	type CommentRequest struct {
		Author string `json:"author" validate:"required"`
		Text   string `json:"text" validate:"required"`
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[CommentRequest](w, r)
	if err != nil {
		return
	}

	project, err := h.projects.AddComment(r.Context(), id, data.Author, data.Text)
	if err != nil {
		h.writeProjectError(w, r, err)
		return
	}

	render.JSON(w, project)
}

func (h *ProjectHandler) writeProjectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrProjectNotFound):
		render.ServiceError(w, "Not found", http.StatusNotFound)
	default:
		h.logger.Error("project request failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
	}
}

// pathID parses the {id} path segment, answering 404 on garbage: route ids
// are opaque and a malformed one simply matches nothing
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}
