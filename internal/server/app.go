// Package server initializes and runs the application: it wires the
// database-backed repositories, the token store, the domain services,
// and the HTTP server, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vaultkeep/vaultkeep/internal/logging"
	"github.com/vaultkeep/vaultkeep/internal/server/config"
	"github.com/vaultkeep/vaultkeep/internal/server/httpapi"
	"github.com/vaultkeep/vaultkeep/internal/server/shared/db"
	"github.com/vaultkeep/vaultkeep/internal/server/tokens"
	"github.com/vaultkeep/vaultkeep/internal/server/users"
	"github.com/vaultkeep/vaultkeep/internal/server/vault"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      db.RepositoryManager
	tokenStore *tokens.Store
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokenStore := tokens.NewStore(cfg.TokenTTL, cfg.SweepInterval, logger)
	accountService := users.NewService(repos.Users(), tokenStore, logger)
	vaultService := vault.NewService(repos.Vault(), repos.Users(), logger)

	httpServer := httpapi.NewServer(cfg.EndpointAddr, logger, accountService, vaultService, tokenStore)

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		tokenStore: tokenStore,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	app.tokenStore.Close()
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
