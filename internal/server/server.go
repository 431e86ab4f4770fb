// Package server holds the application container shared by every layer:
// config, loggers, the SQLite handle, the metrics registry and the
// http.Server that fronts them. It starts listening and tears everything
// down in order on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/pantry/internal/config"
	"github.com/deppfellow/pantry/internal/database"
	"github.com/deppfellow/pantry/internal/metrics"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/pantry/internal/logger"
)

// Server is the dependency container handed to repositories, services,
// handlers and middleware. It is not itself an HTTP server.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService is never nil; its New Relic application may be.
	LoggerService *loggerPkg.LoggerService

	DB      *database.Database
	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New opens the database and creates a fresh metrics registry.
// Migrations are left to the caller (database.Migrate) and nothing listens
// until SetupHTTPServer and Start run.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if loggerService == nil {
		loggerService = &loggerPkg.LoggerService{}
	}

	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Metrics:       metrics.New(),
	}, nil
}

// SetupHTTPServer builds the http.Server on Config.Server.Port around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		ReadTimeout:  s.Config.Server.ReadTimeoutDuration(),
		WriteTimeout: s.Config.Server.WriteTimeoutDuration(),
		IdleTimeout:  s.Config.Server.IdleTimeoutDuration(),
	}
}

// Start blocks serving requests. After Shutdown it returns http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized, call SetupHTTPServer first")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires, then closes the
// database and flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown()

	return nil
}
