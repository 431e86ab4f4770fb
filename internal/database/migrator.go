package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Embed all SQL files under migrations/ at compile time.
// The binary carries its schema and does not depend on the filesystem at runtime.
//
//go:embed migrations/*.sql
var migrations embed.FS

// newProvider creates a goose provider over the embedded migrations subtree.
// The version table is goose_db_version.
func newProvider(db *Database) (*goose.Provider, error) {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB.DB, subtree)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	return provider, nil
}

// Migrate brings the schema up to the latest embedded migration using goose.
//
// Behavior:
//   - Read the current version from goose_db_version
//   - Apply pending migrations
//   - Log whether it was already up-to-date or migrated
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	from, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	if len(results) == 0 {
		logger.Info().Msgf("database schema up to date, version %d", from)
		return nil
	}

	to := results[len(results)-1].Source.Version
	logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	return nil
}

// MigrationState describes one embedded migration and whether it is applied.
type MigrationState struct {
	Version   int64      `json:"version"`
	File      string     `json:"file"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
}

// MigrationStatus lists every embedded migration in version order.
func MigrationStatus(ctx context.Context, db *Database) ([]MigrationState, error) {
	provider, err := newProvider(db)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieving database migration status: %w", err)
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, status := range statuses {
		state := MigrationState{
			Version: status.Source.Version,
			File:    path.Base(status.Source.Path),
			Applied: status.State == goose.StateApplied,
		}
		if state.Applied {
			appliedAt := status.AppliedAt
			state.AppliedAt = &appliedAt
		}
		states = append(states, state)
	}

	return states, nil
}
