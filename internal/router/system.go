package router

import (
	"github.com/deppfellow/boxgen/internal/handler"
	"github.com/deppfellow/boxgen/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API
// proper: probes and documentation.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.Health)
	r.GET("/status", h.Health.CheckStatus)

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.yaml", h.OpenAPI.ServeOpenAPIYAML)
}
