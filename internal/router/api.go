package router

import (
	"github.com/deppfellow/boxgen/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/generate", h.Generate.GenerateSTL())
}
