// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), layers them over built-in defaults, loads them into structured
// Go types and validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists in the working directory it
	// gets loaded into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the PANTRY_ prefix. The prefix is removed, the
	key is lowercased and a double underscore marks one nesting level, so
	single underscores can stay inside key names:

	  PANTRY_SERVER__PORT          -> server.port
	  PANTRY_SERVER__READ_TIMEOUT  -> server.read_timeout
	  PANTRY_DATABASE__PATH        -> database.path
	  PANTRY_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Lists (e.g. CORS origins) are comma separated.
*/

// EnvPrefix is the prefix every environment variable read by LoadConfig carries.
const EnvPrefix = "PANTRY_"

// ServiceName tags logs, metrics and APM data.
const ServiceName = "pantry"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig describes the embedded SQLite database.
type DatabaseConfig struct {
	// Path is the database file. ":memory:" is accepted for throwaway runs.
	Path string `koanf:"path" validate:"required"`

	// MaxOpenConns defaults to 1: one shared connection, SQLite serializes the rest.
	MaxOpenConns int `koanf:"max_open_conns" validate:"required,min=1"`

	// BusyTimeout is how long (ms) a statement waits on a locked database.
	BusyTimeout int `koanf:"busy_timeout" validate:"min=0"`
}

// defaults returns the flat koanf key/value set loaded before the environment.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env": "development",

		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.rate_limit":           0,

		"database.path":           "pantry.db",
		"database.max_open_conns": 1,
		"database.busy_timeout":   5000,

		"observability.logging.level":                           obs.Logging.Level,
		"observability.logging.format":                          obs.Logging.Format,
		"observability.logging.slow_query_threshold":            obs.Logging.SlowQueryThreshold,
		"observability.new_relic.license_key":                   obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":    obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled":   obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":                 obs.NewRelic.DebugLogging,
		"observability.health_checks.enabled":                   obs.HealthChecks.Enabled,
		"observability.health_checks.timeout":                   obs.HealthChecks.Timeout,
		"observability.health_checks.checks":                    obs.HealthChecks.Checks,
	}
}

// envKey turns PANTRY_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// ReadTimeoutDuration returns the server read timeout as a duration.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the server write timeout as a duration.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// IdleTimeoutDuration returns the server idle timeout as a duration.
func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(s.IdleTimeout) * time.Second
}
