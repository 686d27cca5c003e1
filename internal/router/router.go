// Package router builds the Echo instance: it installs the middleware chain
// and maps paths to handlers.
package router

import (
	"github.com/deppfellow/boxgen/internal/handler"
	"github.com/deppfellow/boxgen/internal/middleware"
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the fully wired Echo instance.
//
// CORS is always installed and runs first, so preflight requests and
// rejections (429, 404) carry CORS headers on every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	r.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.RateLimit.Limit(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(r, h)
	registerAPIRoutes(r, h)

	return r
}
