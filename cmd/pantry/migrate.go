package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/pantry/internal/database"
	"github.com/deppfellow/pantry/internal/lib/utils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg, &log, loggerService)
		if err != nil {
			return err
		}
		defer db.Close()
		defer loggerService.Shutdown()

		return database.Migrate(cmd.Context(), &log, db)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every migration as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg, &log, loggerService)
		if err != nil {
			return err
		}
		defer db.Close()
		defer loggerService.Shutdown()

		states, err := database.MigrationStatus(cmd.Context(), db)
		if err != nil {
			return err
		}

		if err := utils.PrintJSON(cmd.OutOrStdout(), states); err != nil {
			return fmt.Errorf("printing migration status: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
}
