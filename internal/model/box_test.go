package model

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestDefaults(t *testing.T) {
	req := NewGenerateRequest()
	assert.Equal(t, 20.0, req.SizeMM)
	assert.Equal(t, 3.0, req.ThicknessMM)
	assert.Empty(t, req.Format)
	assert.NoError(t, req.Validate())
}

func TestGenerateRequestBounds(t *testing.T) {
	tests := []struct {
		name      string
		size, tk  float64
		format    string
		wantField string
	}{
		{"min size", 5, 3, "", ""},
		{"max size", 100, 3, "", ""},
		{"min thickness", 20, 1, "", ""},
		{"max thickness", 20, 20, "ascii", ""},
		{"size below", 4.99, 3, "", "size_mm"},
		{"size above", 100.01, 3, "", "size_mm"},
		{"size negative", -20, 3, "", "size_mm"},
		{"thickness below", 20, 0.99, "", "thickness_mm"},
		{"thickness above", 20, 20.01, "", "thickness_mm"},
		{"bad format", 20, 3, "obj", "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &GenerateRequest{SizeMM: tt.size, ThicknessMM: tt.tk, Format: tt.format}
			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestGenerateRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      GenerateRequest
		wantField string
	}{
		{"empty object keeps defaults", `{}`, GenerateRequest{SizeMM: 20, ThicknessMM: 3}, ""},
		{"partial", `{"size_mm": 50}`, GenerateRequest{SizeMM: 50, ThicknessMM: 3}, ""},
		{"all fields", `{"size_mm": 7, "thickness_mm": 2, "format": "ascii"}`, GenerateRequest{SizeMM: 7, ThicknessMM: 2, Format: "ascii"}, ""},
		{"null format keeps default", `{"format": null}`, GenerateRequest{SizeMM: 20, ThicknessMM: 3}, ""},
		{"null size", `{"size_mm": null}`, GenerateRequest{}, "size_mm"},
		{"null thickness", `{"thickness_mm":  null }`, GenerateRequest{}, "thickness_mm"},
		{"string size", `{"size_mm": "big"}`, GenerateRequest{}, "size_mm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewGenerateRequest()
			err := json.Unmarshal([]byte(tt.body), req)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, *req)
				return
			}

			var typeErr *json.UnmarshalTypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, tt.wantField, typeErr.Field)
		})
	}
}
