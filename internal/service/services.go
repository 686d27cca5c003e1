package service

import (
	"github.com/deppfellow/boxgen/internal/server"
)

// Services groups the business layer so handlers receive a single value.
type Services struct {
	Mesh *MeshService
}

func NewServices(s *server.Server) (*Services, error) {
	meshService, err := NewMeshService(s)
	if err != nil {
		return nil, err
	}

	return &Services{
		Mesh: meshService,
	}, nil
}
