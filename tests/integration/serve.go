package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/handlers"
	"github.com/akozyrev/folio/internal/handlers/middleware"
	"github.com/akozyrev/folio/internal/logger"
	"github.com/akozyrev/folio/internal/repository/postgres"
	"github.com/akozyrev/folio/internal/service/auth"
	"github.com/akozyrev/folio/internal/service/auth/tokenmanager"
	"github.com/akozyrev/folio/internal/service/contact"
	"github.com/akozyrev/folio/internal/service/portfolio"
	"github.com/akozyrev/folio/internal/service/project"
	"github.com/akozyrev/folio/internal/testutil"
)

type Services struct {
	AuthService      *auth.AuthService
	ProjectService   *project.ProjectService
	PortfolioService *portfolio.PortfolioService
	ContactService   *contact.ContactService
}

// RunTx wires the whole API over one db transaction and serves it on a
// real port. The transaction is rolled back when fn returns, so the
// database stays clean between tests
func RunTx(dbpool *pgxpool.Pool, t *testing.T, fn func(srvURL string, s Services)) {
	t.Helper()

	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)
		noop := logger.NewNoOp()

		tokenManager, err := tokenmanager.New(tokenmanager.Config{
			AccessSecret:  testutil.AccessSecret,
			RefreshSecret: testutil.RefreshSecret,
		})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(auth.Config{Hasher: auth.BcryptHasher{Cost: 4}}, tokenManager, storage)
		require.NoError(t, err, "auth service starting error")

		ps := project.NewService(storage.Project())
		pfs := portfolio.NewService(storage.Portfolio())
		cs := contact.NewService(storage.Contact())

		router := handlers.NewRouter(
			handlers.NewAuth(as, noop),
			handlers.NewProject(ps, noop),
			handlers.NewPortfolio(pfs, noop),
			handlers.NewContact(cs, noop),
			middleware.AuthMiddleware(as),
			nil,
			middleware.RequestIDMiddleware(),
		)

		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, Services{
			AuthService:      as,
			ProjectService:   ps,
			PortfolioService: pfs,
			ContactService:   cs,
		})
	})
}
