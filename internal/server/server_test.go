package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deppfellow/pantry/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerLifecycleWithoutHTTP(t *testing.T) {
	cfg := &config.Config{
		Primary: config.Primary{Env: "development"},
		Server:  config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "pantry.db"),
			MaxOpenConns: 1,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	s, err := New(cfg, &logger, nil)
	require.NoError(t, err)

	require.NotNil(t, s.LoggerService)
	assert.Nil(t, s.LoggerService.GetApplication())
	require.NotNil(t, s.Metrics)
	require.NoError(t, s.DB.Ping(context.Background()))

	assert.Error(t, s.Start())
	assert.NoError(t, s.Shutdown(context.Background()))
}
