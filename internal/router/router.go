// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/pantry/internal/handler"
	"github.com/deppfellow/pantry/internal/middleware"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
//
// Middleware order matters: the request ID must exist before the context
// logger is built, and the New Relic transaction before tracing attributes
// are added.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	chain := []echo.MiddlewareFunc{
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
	}

	// Rejected requests are still logged and counted.
	if middlewares.RateLimit.Enabled() {
		chain = append(chain, middlewares.RateLimit.Limit())
	}

	chain = append(chain,
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.Recover(),
	)

	router.Use(chain...)

	registerSystemRoutes(router, s, h)
	registerListRoutes(router, h)

	return router
}
