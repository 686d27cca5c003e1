package handler

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/boxgen/internal/server"
	"github.com/deppfellow/boxgen/static"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

// MIMEApplicationYAML is the media type of the YAML OpenAPI document.
const MIMEApplicationYAML = "application/yaml"

// OpenAPIHandler serves the API documentation UI and the OpenAPI document.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the embedded openapi.html without caching.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(static.FS, static.OpenAPIUI)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ServeOpenAPIYAML serves the embedded OpenAPI document converted to YAML,
// keeping the key order of the JSON source.
func (h *OpenAPIHandler) ServeOpenAPIYAML(c echo.Context) error {
	data, err := OpenAPIYAML()
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, MIMEApplicationYAML, data)
}

// OpenAPIYAML converts the embedded openapi.json to block-style YAML.
func OpenAPIYAML() ([]byte, error) {
	src, err := fs.ReadFile(static.FS, static.OpenAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI spec: %w", err)
	}

	// JSON is valid YAML; decoding into a node keeps key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI spec to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
