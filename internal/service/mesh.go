package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/boxgen/internal/errs"
	"github.com/deppfellow/boxgen/internal/geometry"
	"github.com/deppfellow/boxgen/internal/model"
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/deppfellow/boxgen/internal/stl"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// ErrorCodeEncodingFailed is the API error code for an STL encoding failure.
const ErrorCodeEncodingFailed = "STL_ENCODING_FAILED"

// MeshService builds box solids and encodes them as STL.
//
// It holds only read-only configuration; every call builds a fresh mesh.
type MeshService struct {
	server  *server.Server
	encoder *stl.Encoder
}

// NewMeshService creates a MeshService using the configured STL header.
func NewMeshService(s *server.Server) (*MeshService, error) {
	encoder, err := stl.NewEncoder(s.Config.Mesh.HeaderComment)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh header: %w", err)
	}

	return &MeshService{
		server:  s,
		encoder: encoder,
	}, nil
}

// BuildBox returns the mesh for req: a square box of side size_mm and
// height thickness_mm.
func (ms *MeshService) BuildBox(req *model.GenerateRequest) *geometry.Mesh {
	mesh := geometry.BuildBox(req.SizeMM, req.SizeMM, req.ThicknessMM)
	mesh.Name = ms.server.Config.Mesh.SolidName
	return mesh
}

// Generate builds and encodes the box described by req.
//
// req must already be validated. An encoding failure is returned as a 500
// *errs.HTTPError; the cause is logged, never sent to the client.
func (ms *MeshService) Generate(ctx context.Context, req *model.GenerateRequest) ([]byte, error) {
	start := time.Now()

	format, err := stl.ParseFormat(req.Format)
	if err != nil {
		return nil, errs.ValidationError(err)
	}

	if txn := newrelic.FromContext(ctx); txn != nil {
		defer txn.StartSegment("mesh.generate").End()
	}

	data, err := ms.encoder.Encode(ms.BuildBox(req), format)
	if err != nil {
		ms.server.Logger.Error().
			Err(errors.WithStack(err)).
			Float64("size_mm", req.SizeMM).
			Float64("thickness_mm", req.ThicknessMM).
			Str("format", string(format)).
			Msg("failed to encode mesh")
		return nil, errs.NewInternalServerErrorWithCode(ErrorCodeEncodingFailed)
	}

	ms.server.LoggerService.RecordEvent("StlGenerated", map[string]interface{}{
		"size_mm":      req.SizeMM,
		"thickness_mm": req.ThicknessMM,
		"format":       string(format),
		"bytes":        len(data),
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	return data, nil
}

// SelfCheck builds and encodes a default box, then decodes it again and
// compares triangle count and volume. It backs the /status endpoint.
func (ms *MeshService) SelfCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := model.NewGenerateRequest()
	data, err := ms.encoder.Binary(ms.BuildBox(req))
	if err != nil {
		return errors.Wrap(err, "encode default box")
	}

	solid, err := stl.DecodeBinary(data)
	if err != nil {
		return errors.Wrap(err, "decode default box")
	}

	if len(solid.Triangles) != 12 {
		return errors.Errorf("expected 12 triangles, got %d", len(solid.Triangles))
	}

	want := req.SizeMM * req.SizeMM * req.ThicknessMM
	if got := solid.Volume(); got < want*0.999 || got > want*1.001 {
		return errors.Errorf("expected volume %.3f, got %.3f", want, got)
	}

	return nil
}
