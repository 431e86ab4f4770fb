// Package main provides the pantry CLI.
//
// `pantry serve` runs the HTTP API, `pantry migrate` manages the schema.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/pantry/internal/config"
	"github.com/deppfellow/pantry/internal/logger"
)

var (
	// cfg is loaded once by PersistentPreRunE.
	cfg *config.Config

	// loggerService and log are shared by every subcommand.
	loggerService *logger.LoggerService
	log           zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Pantry tracks inventory and shopping lists",
	Long: `Pantry is an HTTP service that keeps a household inventory list and a
shopping list in an embedded SQLite database.

Configuration is read from PANTRY_ prefixed environment variables and an
optional .env file in the working directory.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initRuntime loads config and builds the logger.
func initRuntime(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err = logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to start logger service: %w", err)
	}

	log = logger.NewLoggerWithService(cfg.Observability, loggerService)
	return nil
}
