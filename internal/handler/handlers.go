// Package handler is the HTTP layer: it binds and validates requests,
// calls the service layer and writes responses.
package handler

import (
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/deppfellow/boxgen/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health   *HealthHandler
	Generate *GenerateHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s, services),
		Generate: NewGenerateHandler(s, services),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
