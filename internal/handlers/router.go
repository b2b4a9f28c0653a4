package handlers

import (
	"net/http"

	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/handlers/render"
	"github.com/akozyrev/folio/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewRouter wires every route of the API.
//
// authGate is the bearer-token middleware; admin-only routes run behind
// authGate plus the role gate, in that order. loginLimiter protects the
// credential and token endpoints and may be nil. Outer middlewares (request
// id, logging) are applied around the whole router in the given order
func NewRouter(
	authHandler *AuthHandler,
	projectHandler *ProjectHandler,
	portfolioHandler *PortfolioHandler,
	contactHandler *ContactHandler,
	authGate func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
	mds ...func(next http.Handler) http.Handler,
) http.Handler {
	if loginLimiter == nil {
		loginLimiter = func(h http.Handler) http.Handler { return h }
	}

	// Stage order matters: the role gate reads the identity the auth gate
	// put into the context
	withAdmin := func(h http.Handler) http.Handler {
		return chain(h, authGate, middleware.RequireRole(models.RoleAdmin))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handleHealth)

	mux.Handle("POST /api/auth/register", http.HandlerFunc(authHandler.register))
	mux.Handle("POST /api/auth/login", loginLimiter(http.HandlerFunc(authHandler.login)))
	mux.Handle("POST /api/auth/refresh", loginLimiter(http.HandlerFunc(authHandler.refresh)))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandler.logout))

	mux.Handle("GET /api/projects", http.HandlerFunc(projectHandler.list))
	mux.Handle("GET /api/projects/{id}", http.HandlerFunc(projectHandler.get))
	mux.Handle("POST /api/projects/{id}/like", http.HandlerFunc(projectHandler.like))
	mux.Handle("POST /api/projects/{id}/comments", http.HandlerFunc(projectHandler.addComment))
	mux.Handle("POST /api/projects", withAdmin(http.HandlerFunc(projectHandler.create)))
	mux.Handle("PUT /api/projects/{id}", withAdmin(http.HandlerFunc(projectHandler.update)))
	mux.Handle("DELETE /api/projects/{id}", withAdmin(http.HandlerFunc(projectHandler.delete)))

	mux.Handle("GET /api/portfolio", http.HandlerFunc(portfolioHandler.get))
	mux.Handle("PUT /api/portfolio", withAdmin(http.HandlerFunc(portfolioHandler.update)))

	mux.Handle("POST /api/contact", http.HandlerFunc(contactHandler.send))
	mux.Handle("GET /api/contact", withAdmin(http.HandlerFunc(contactHandler.list)))
	mux.Handle("POST /api/contact/mark-all-read", withAdmin(http.HandlerFunc(contactHandler.markAllRead)))
	mux.Handle("POST /api/contact/{id}/read", withAdmin(http.HandlerFunc(contactHandler.markRead)))
	mux.Handle("DELETE /api/contact/{id}", withAdmin(http.HandlerFunc(contactHandler.delete)))

	return chain(mux, mds...)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, map[string]string{"status": "ok"})
}
