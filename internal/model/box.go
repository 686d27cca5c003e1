// Package model holds the request and response payloads of the HTTP API.
package model

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/deppfellow/boxgen/internal/validation"
)

const (
	// DefaultSizeMM is the box side used when the request omits size_mm.
	DefaultSizeMM = 20.0
	// DefaultThicknessMM is the box thickness used when the request omits thickness_mm.
	DefaultThicknessMM = 3.0
)

// GenerateRequest is the body of POST /generate.
//
// Bounds are closed: 5 and 100 are valid sizes, 4.99 and 100.01 are not.
// Format is "binary" (default) or "ascii".
type GenerateRequest struct {
	SizeMM      float64 `json:"size_mm" validate:"gte=5,lte=100"`
	ThicknessMM float64 `json:"thickness_mm" validate:"gte=1,lte=20"`
	Format      string  `json:"format" validate:"omitempty,oneof=binary ascii"`
}

// NewGenerateRequest returns a request pre-filled with defaults. Binding a
// JSON body over it only replaces the fields the client sent.
func NewGenerateRequest() *GenerateRequest {
	return &GenerateRequest{
		SizeMM:      DefaultSizeMM,
		ThicknessMM: DefaultThicknessMM,
	}
}

// numericFields may be omitted but never null.
var numericFields = []string{"size_mm", "thickness_mm"}

// UnmarshalJSON decodes over the current values, so omitted fields keep
// their defaults. An explicit null for a numeric field is a type error.
func (r *GenerateRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, name := range numericFields {
		if raw, ok := fields[name]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return &json.UnmarshalTypeError{
				Value: "null",
				Type:  reflect.TypeOf(float64(0)),
				Field: name,
			}
		}
	}

	type plain GenerateRequest
	return json.Unmarshal(data, (*plain)(r))
}

func (r *GenerateRequest) Validate() error {
	return validation.Struct(r)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}
