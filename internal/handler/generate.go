package handler

import (
	"net/http"

	"github.com/deppfellow/boxgen/internal/model"
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/deppfellow/boxgen/internal/service"
	"github.com/labstack/echo/v4"
)

// ContentTypeSTL is the media type of the generated file.
const ContentTypeSTL = "application/sla"

// GenerateHandler serves POST /generate.
type GenerateHandler struct {
	Handler
	services *service.Services
}

func NewGenerateHandler(s *server.Server, services *service.Services) *GenerateHandler {
	return &GenerateHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// GenerateSTL returns the route handler. Omitted fields fall back to
// model.DefaultSizeMM and model.DefaultThicknessMM.
func (h *GenerateHandler) GenerateSTL() echo.HandlerFunc {
	return HandleFile(
		h.Handler,
		func(c echo.Context, req *model.GenerateRequest) ([]byte, error) {
			return h.services.Mesh.Generate(c.Request().Context(), req)
		},
		http.StatusOK,
		model.NewGenerateRequest,
		h.server.Config.Mesh.Filename,
		ContentTypeSTL,
	)
}
