package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/pantry/internal/middleware"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves /status for uptime monitors and load balancers.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. Unknown check names are skipped with a warning.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	healthy := true

	healthCfg := h.server.Config.Observability.HealthChecks
	if healthCfg.Enabled {
		for _, name := range healthCfg.Checks {
			if name != "database" {
				logger.Warn().Str("check", name).Msg("unknown health check skipped")
				continue
			}

			result, err := h.checkDatabase(c.Request().Context(), healthCfg.Timeout)
			checks[name] = result
			if err != nil {
				healthy = false
				logger.Error().Err(err).Msg("database health check failed")
			}
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	if err := c.JSON(code, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// checkDatabase pings SQLite within timeout. Failures are also reported to
// New Relic as HealthCheckError events.
func (h *HealthHandler) checkDatabase(ctx context.Context, timeout time.Duration) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := h.server.DB.Ping(ctx)
	elapsed := time.Since(start)

	result := map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	if err == nil {
		return result, nil
	}

	result["status"] = "unhealthy"
	result["error"] = err.Error()

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       "database",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return result, err
}
