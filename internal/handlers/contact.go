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

type contactService interface {
	Send(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) (models.ContactMessage, error)
	MarkAllRead(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactHandler struct {
	contact contactService
	logger  logger.Logger
}

func NewContact(contact contactService, l logger.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, logger: l}
}

func (h *ContactHandler) send(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		Sender   string `json:"sender" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Subject  string `json:"subject" validate:"required"`
		Body     string `json:"body" validate:"required"`
		Priority string `json:"priority" validate:"omitempty,oneof=Low Normal Urgent"`
	}

	data, err := render.BindAndValidate[SendRequest](w, r)
	if err != nil {
		return
	}

	msg, err := h.contact.Send(r.Context(), models.ContactMessage{
		Sender:   data.Sender,
		Email:    data.Email,
		Subject:  data.Subject,
		Body:     data.Body,
		Priority: data.Priority,
	})
	if err != nil {
		h.writeContactError(w, r, err)
		return
	}

	render.JSONWithStatus(w, msg, http.StatusCreated)
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contact.List(r.Context())
	if err != nil {
		h.writeContactError(w, r, err)
		return
	}

	render.JSON(w, messages)
}

func (h *ContactHandler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	msg, err := h.contact.MarkRead(r.Context(), id)
	if err != nil {
		h.writeContactError(w, r, err)
		return
	}

	render.JSON(w, msg)
}

func (h *ContactHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contact.MarkAllRead(r.Context())
	if err != nil {
		h.writeContactError(w, r, err)
		return
	}

	render.JSON(w, messages)
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.contact.Delete(r.Context(), id); err != nil {
		h.writeContactError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactHandler) writeContactError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMessageNotFound):
		render.ServiceError(w, "Not found", http.StatusNotFound)
	default:
		h.logger.Error("contact request failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
	}
}
