package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/SscSPs/simplefi_backend/internal/core/services"
	"github.com/SscSPs/simplefi_backend/internal/handlers"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/SscSPs/simplefi_backend/internal/platform/config"
	"github.com/SscSPs/simplefi_backend/internal/platform/database"
	"github.com/SscSPs/simplefi_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/simplefi_backend/internal/repositories/memory"
	"github.com/SscSPs/simplefi_backend/internal/utils"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// openRepositories selects the storage backend. The returned cleanup must be called on exit.
func openRepositories(ctx context.Context) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.New()), func() {}, nil
	default:
		if cfg.AutoMigrate {
			logger.Info("Running database migrations...")
			if err := database.MigrateUp(cfg.DatabaseURL, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		repos := pgsql.NewRepositoryProvider(dbPool)
		if !cfg.EnableDBCheck {
			repos.Health = nil
		}
		return repos, func() { database.ClosePgxPool(dbPool, logger) }, nil
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("error", err.Error()))
		return err
	}
	defer closeRepos()

	svc := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	aiLimiter, err := middleware.NewMemoryLimiter(cfg.AIRateLimit)
	if err != nil {
		logger.Error("Failed to configure AI rate limit", slog.String("error", err.Error()))
		return err
	}

	router, err := handlers.NewRouter(cfg, svc, logger, handlers.RouterDeps{
		Posthog:   posthogClient,
		AILimiter: aiLimiter,
	})
	if err != nil {
		logger.Error("Failed to build router", slog.String("error", err.Error()))
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
