// Package database contains the logic for opening the embedded
// SQLite database.
//
// It handles:
//   - building a DSN (file path + connection pragmas) from config
//   - creating the sqlx handle over the modernc.org/sqlite driver
//   - wiring query tracing/logging (local SQL logs, slow query warnings)
//   - optional New Relic datastore segments
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/deppfellow/pantry/internal/config"
	loggerConfig "github.com/deppfellow/pantry/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// Database wraps the sqlx handle and a logger.
// It provides a simple object you can pass around the app.
//
// Every query goes through ExecContext, GetContext or SelectContext so it is
// traced the same way.
type Database struct {
	DB  *sqlx.DB
	log *zerolog.Logger

	// queryLevel is the level of the SQL trace logger, clamped in production.
	queryLevel zerolog.Level
	production bool

	// traceQueries logs every statement with its arguments. Noisy, "local" env only.
	traceQueries       bool
	slowQueryThreshold time.Duration
	newRelic           bool
}

// DSN builds the modernc.org/sqlite data source name for cfg.
//
//	pantry.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", cfg.Path, cfg.BusyTimeout)
}

// New opens the SQLite database with instrumentation.
//
// Behavior:
//   - Open the database file (created on first use)
//   - Limit the pool to cfg.Database.MaxOpenConns (one shared connection by default)
//   - Enable SQL tracing in "local" env and New Relic segments when an agent runs
//   - Ping it and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	db, err := sqlx.Open(DriverName, DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns)
	// An in-memory database lives exactly as long as its connection.
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	obs := cfg.Observability
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}

	database := &Database{
		DB:                 db,
		log:                logger,
		queryLevel:         logger.GetLevel(),
		production:         obs.IsProduction(),
		traceQueries:       cfg.Primary.Env == "local",
		slowQueryThreshold: obs.Logging.SlowQueryThreshold,
		newRelic:           loggerService.GetApplication() != nil,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("path", cfg.Database.Path).Msg("connected to the database")

	return database, nil
}

// Ping checks that the database is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the database handle.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")
	return db.DB.Close()
}

// ExecContext runs a statement that returns no rows.
func (db *Database) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	finish := db.trace(ctx, query, args)
	result, err := db.DB.ExecContext(ctx, query, args...)
	finish(err)
	return result, err
}

// GetContext scans a single row into dest. sql.ErrNoRows is returned as is.
func (db *Database) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	finish := db.trace(ctx, query, args)
	err := db.DB.GetContext(ctx, dest, query, args...)
	finish(err)
	return err
}

// SelectContext scans all rows into dest, which must be a pointer to a slice.
func (db *Database) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	finish := db.trace(ctx, query, args)
	err := db.DB.SelectContext(ctx, dest, query, args...)
	finish(err)
	return err
}

// trace starts timing a statement and returns the function that records it.
func (db *Database) trace(ctx context.Context, query string, args []interface{}) func(error) {
	operation, collection := describeQuery(query)

	var segment *newrelic.DatastoreSegment
	if db.newRelic {
		if txn := newrelic.FromContext(ctx); txn != nil {
			segment = &newrelic.DatastoreSegment{
				StartTime:          txn.StartSegmentNow(),
				Product:            newrelic.DatastoreSQLite,
				Collection:         collection,
				Operation:          operation,
				ParameterizedQuery: query,
			}
		}
	}

	start := time.Now()

	return func(err error) {
		elapsed := time.Since(start)
		if segment != nil {
			segment.End()
		}

		log := loggerConfig.NewQueryLogger(db.requestLogger(ctx), db.queryLevel, db.production)

		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			log.Debug().
				Err(err).
				Str("operation", operation).
				Str("table", collection).
				Dur("duration", elapsed).
				Msg("query failed")
			return
		}

		if db.slowQueryThreshold > 0 && elapsed >= db.slowQueryThreshold {
			log.Warn().
				Str("sql", query).
				Str("table", collection).
				Dur("duration", elapsed).
				Dur("threshold", db.slowQueryThreshold).
				Msg("slow query")
			return
		}

		if db.traceQueries {
			log.Debug().
				Str("sql", query).
				Interface("args", args).
				Dur("duration", elapsed).
				Msg("query")
		}
	}
}

// requestLogger prefers the request-scoped logger stored in ctx.
func (db *Database) requestLogger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return *db.log
}

var collectionRe = regexp.MustCompile(`(?i)\b(?:FROM|INTO|UPDATE)\s+(\w+)`)

// describeQuery returns the SQL verb and the first table a statement touches.
func describeQuery(query string) (string, string) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "", ""
	}

	operation := strings.ToUpper(fields[0])

	var collection string
	if m := collectionRe.FindStringSubmatch(query); len(m) == 2 {
		collection = m[1]
	}

	return operation, collection
}
