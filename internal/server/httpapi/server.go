// Package httpapi exposes the account, login, and vault endpoints over
// HTTP. Rejections are reported as application/problem+json payloads;
// protected routes sit behind the bearer-token middleware.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vaultkeep/vaultkeep/internal/logging"
	"github.com/vaultkeep/vaultkeep/internal/server/tokens"
	"github.com/vaultkeep/vaultkeep/internal/server/users"
	"github.com/vaultkeep/vaultkeep/internal/server/vault"
)

const usernameKey = "username"

type Server struct {
	app      *fiber.App
	address  string
	logger   logging.Logger
	accounts *users.Service
	vault    *vault.Service
	tokens   *tokens.Store
}

func NewServer(address string, logger logging.Logger, accounts *users.Service, vs *vault.Service, ts *tokens.Store) *Server {
	s := &Server{
		address:  address,
		logger:   logger.With("module", "http_server"),
		accounts: accounts,
		vault:    vs,
		tokens:   ts,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// Leave headroom above the limit so an oversized vault payload
		// reaches the validator and gets a proper problem response.
		BodyLimit: vault.EncDataMaxLength + 64*1024,
	})

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Use(s.requestContext)

	account := s.app.Group("/account")
	account.Post("/", s.createAccount)
	account.Post("/login", s.login)
	account.Post("/logout", s.requireAuth, s.logout)

	v := s.app.Group("/vault", s.requireAuth)
	v.Get("/", s.listVault)
	v.Post("/", s.createVaultEntry)
	v.Delete("/", s.deleteVault)
	v.Get("/:id", s.getVaultEntry)
	v.Put("/:id", s.updateVaultEntry)
	v.Delete("/:id", s.deleteVaultEntry)
}

// App returns the underlying fiber app, used by tests to inject
// requests without a listener.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the listener and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
