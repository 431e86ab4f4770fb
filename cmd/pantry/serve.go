package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/pantry/internal/database"
	"github.com/deppfellow/pantry/internal/handler"
	"github.com/deppfellow/pantry/internal/repository"
	"github.com/deppfellow/pantry/internal/router"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/service"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	shutdownTimeout time.Duration
	skipMigrations  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Open the database, apply pending migrations and serve the inventory
and shopping list API until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "time allowed for in-flight requests on shutdown")
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !skipMigrations {
		if err := database.Migrate(ctx, &log, srv.DB); err != nil {
			_ = srv.DB.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.DB.Close()
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	if err := run(ctx, srv, shutdownTimeout); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

// lifecycle is the part of *server.Server that run drives.
type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// run serves until ctx is cancelled or the listener fails, then shuts srv
// down within timeout. A listener failure is returned after shutdown.
func run(ctx context.Context, srv lifecycle, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case runErr = <-serveErr:
		if runErr != nil {
			log.Error().Err(runErr).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("server failed: %w", runErr)
	}
	return nil
}
