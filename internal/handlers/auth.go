package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/handlers/render"
	"github.com/akozyrev/folio/internal/logger"
	"github.com/akozyrev/folio/internal/models"
	"github.com/akozyrev/folio/internal/service/auth"
)

type authService interface {
	Register(ctx context.Context, email string, password string, name string, role string) (auth.AuthResult, error)
	Login(ctx context.Context, email string, password string) (auth.AuthResult, error)
	Refresh(ctx context.Context, refresh string) (models.TokenPair, error)
	Logout(ctx context.Context, refresh string) error
}

type AuthHandler struct {
	authService authService
	logger      logger.Logger
}

func NewAuth(auth authService, l logger.Logger) *AuthHandler {
	return &AuthHandler{authService: auth, logger: l}
}

func (h *AuthHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("POST /refresh", h.refresh)
	mux.HandleFunc("POST /logout", h.logout)

	return mux
}

// Response with a full token pair plus the public user representation.
// The password hash never appears here: PublicUser has no field for it
type authSuccessResponse struct {
	User         models.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required,min=2,max=100"`
	}

	data, err := render.BindAndValidate[RegisterRequest](w, r)
	if err != nil {
		return
	}

	// Single-tenant portfolio: whoever registers owns the site.
	// The role stays an explicit argument so the service never hardcodes it
	result, err := h.authService.Register(r.Context(), data.Email, data.Password, data.Name, models.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken):
			render.ServiceError(w, "Email already registered", http.StatusConflict)
		case errors.Is(err, apperrors.ErrPasswordTooShort):
			render.ServiceError(w, "Password is too short", http.StatusBadRequest)
		default:
			h.logger.Error("register failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
			render.InternalError(w, middleware.RequestID(r.Context()))
		}
		return
	}

	render.JSONWithStatus(w, authSuccessResponse{
		User:         result.User.Public(),
		AccessToken:  result.Pair.Access.Value,
		RefreshToken: result.Pair.Refresh.Value,
	}, http.StatusCreated)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		return
	}

	result, err := h.authService.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			// Identical response for unknown email and wrong password
			render.ServiceError(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			h.logger.Error("login failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
			render.InternalError(w, middleware.RequestID(r.Context()))
		}
		return
	}

	render.JSON(w, authSuccessResponse{
		User:         result.User.Public(),
		AccessToken:  result.Pair.Access.Value,
		RefreshToken: result.Pair.Refresh.Value,
	})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	type RefreshSuccessResponse struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	data, err := render.BindAndValidate[RefreshRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.authService.Refresh(r.Context(), data.RefreshToken)
	if err != nil {
		// Expired, revoked, replayed and forged tokens all collapse into
		// one answer: no oracle for attack refinement
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenNotFound),
			errors.Is(err, apperrors.ErrRefreshTokenRevoked),
			errors.Is(err, apperrors.ErrRefreshTokenExpired):
			render.ServiceError(w, "Invalid refresh token", http.StatusUnauthorized)
		default:
			h.logger.Error("refresh failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
			render.InternalError(w, middleware.RequestID(r.Context()))
		}
		return
	}

	render.JSON(w, RefreshSuccessResponse{
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	type LogoutRequest struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	type LogoutSuccessResponse struct {
		Success bool `json:"success"`
	}

	data, err := render.BindAndValidate[LogoutRequest](w, r)
	if err != nil {
		return
	}

	// Always succeeds for unknown tokens: logout must not reveal
	// whether a token ever existed
	if err := h.authService.Logout(r.Context(), data.RefreshToken); err != nil {
		h.logger.Error("logout failed", "error", err.Error(), "request_id", middleware.RequestID(r.Context()))
		render.InternalError(w, middleware.RequestID(r.Context()))
		return
	}

	render.JSON(w, LogoutSuccessResponse{Success: true})
}
