package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akozyrev/folio/internal/db"
	"github.com/akozyrev/folio/internal/handlers"
	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/logger"
	"github.com/akozyrev/folio/internal/repository/postgres"
	"github.com/akozyrev/folio/internal/service/auth"
	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
	"github.com/akozyrev/folio/internal/service/contact"
	"github.com/akozyrev/folio/internal/service/portfolio"
	"github.com/akozyrev/folio/internal/service/project"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config. Err: %w", err)
	}

	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecret:  c.AccessSecret,
		RefreshSecret: c.RefreshSecret,
		AccessTTL:     c.AccessTTL,
		RefreshTTL:    c.RefreshTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(
		auth.Config{Hasher: auth.BcryptHasher{Cost: c.BcryptCost}},
		tokenManager,
		storage,
	)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	projectService := project.NewService(storage.Project())
	portfolioService := portfolio.NewService(storage.Portfolio())
	contactService := contact.NewService(storage.Contact())

	// Login rate limiter backed by redis; disabled without an address
	var loginLimiter func(http.Handler) http.Handler
	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		loginLimiter = middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			Window: c.LoginRateWindow,
			Max:    c.LoginRateMax,
			Prefix: "ratelimit:login",
		}, rdb, log)
	}

	mux := handlers.NewRouter(
		handlers.NewAuth(authService, log),
		handlers.NewProject(projectService, log),
		handlers.NewPortfolio(portfolioService, log),
		handlers.NewContact(contactService, log),
		middleware.AuthMiddleware(authService),
		loginLimiter,
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(log),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
